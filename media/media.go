// Package media wraps the remote image host. Callers hand it a raw image
// payload (data URI or base64) and get back a hosted URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPayloadTooLarge is returned when the host rejects the image for size.
	ErrPayloadTooLarge = errors.New("media: payload too large")
	// ErrUpload covers every other rejection or transport failure.
	ErrUpload = errors.New("media: upload failed")
)

type Uploader interface {
	Upload(ctx context.Context, payload string) (string, error)
}

// classifyRejection maps a remote rejection message onto the error taxonomy.
func classifyRejection(message string) error {
	if strings.Contains(strings.ToLower(message), "too large") {
		return fmt.Errorf("%w: %s", ErrPayloadTooLarge, message)
	}
	return fmt.Errorf("%w: %s", ErrUpload, message)
}
