package client

import "context"

// Swipe gestures as the gallery view receives them.
type Swipe int

const (
	SwipeLeft Swipe = iota
	SwipeRight
)

// Arrow-key identifiers, matching the browser's KeyboardEvent.key values.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// HandleSwipe maps gestures onto navigation: swipe left goes back, swipe
// right advances.
func (n *Navigator) HandleSwipe(ctx context.Context, s Swipe) error {
	switch s {
	case SwipeLeft:
		return n.Prev(ctx)
	case SwipeRight:
		return n.Next(ctx)
	}
	return nil
}

// HandleKey maps arrow keys onto navigation. Note the mapping is mirrored
// relative to swipe: ArrowLeft advances and ArrowRight goes back. The
// original gallery shipped with this inversion and users know it, so it is
// kept verbatim. Unrecognized keys are ignored.
func (n *Navigator) HandleKey(ctx context.Context, key string) error {
	switch key {
	case KeyArrowLeft:
		return n.Next(ctx)
	case KeyArrowRight:
		return n.Prev(ctx)
	}
	return nil
}
