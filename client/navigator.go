package client

import "context"

// State is the navigator's view state.
type State int

const (
	StateLoading State = iota
	StateDisplaying
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateDisplaying:
		return "displaying"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// NotFoundRoute is where owner navigation lands when a post has no
// resolvable owner.
const NotFoundRoute = "/404-not-found"

// Navigator steps through the gallery one post at a time. Each step
// re-fetches the entire collection and moves by index with wraparound at
// both ends, exactly like the original gallery view did. That makes a
// single step O(total posts); callers that care should cache upstream.
//
// Navigator is not safe for concurrent use; drive it from one goroutine,
// the way a UI event loop would.
type Navigator struct {
	api     *Client
	state   State
	current Post
	errMsg  string
}

func NewNavigator(api *Client) *Navigator {
	return &Navigator{api: api, state: StateLoading}
}

func (n *Navigator) State() State { return n.state }

func (n *Navigator) Current() Post { return n.current }

func (n *Navigator) ErrorMessage() string { return n.errMsg }

// Route is the view route for the displayed post.
func (n *Navigator) Route() string {
	return "/image/" + n.current.ID
}

// OwnerRoute is the profile route for the displayed post's owner, or the
// not-found route when the owner cannot be resolved.
func (n *Navigator) OwnerRoute() string {
	if n.current.User == nil || n.current.User.ID == "" {
		return NotFoundRoute
	}
	return "/users/" + n.current.User.ID
}

func (n *Navigator) fail(err error) error {
	n.state = StateFailed
	n.errMsg = err.Error()
	return err
}

// Load fetches a single post by id and displays it.
func (n *Navigator) Load(ctx context.Context, id string) error {
	n.state = StateLoading

	post, err := n.api.GetPost(ctx, id)
	if err != nil {
		return n.fail(err)
	}

	n.current = post
	n.state = StateDisplaying
	return nil
}

// Next advances to the following post in insertion order, wrapping to the
// first post past the end.
func (n *Navigator) Next(ctx context.Context) error {
	return n.step(ctx, 1)
}

// Prev moves to the preceding post, wrapping to the last post before the
// beginning.
func (n *Navigator) Prev(ctx context.Context) error {
	return n.step(ctx, -1)
}

func (n *Navigator) step(ctx context.Context, delta int) error {
	n.state = StateLoading

	posts, err := n.api.ListPosts(ctx)
	if err != nil {
		return n.fail(err)
	}
	if len(posts) == 0 {
		return n.fail(&APIError{StatusCode: 404, Message: "No posts to display"})
	}

	index := -1
	for i, post := range posts {
		if post.ID == n.current.ID {
			index = i
			break
		}
	}
	// Current post gone from the collection (deleted meanwhile): land on
	// the first post instead of guessing an index.
	if index < 0 {
		n.current = posts[0]
		n.state = StateDisplaying
		return nil
	}

	next := (index + delta + len(posts)) % len(posts)
	n.current = posts[next]
	n.state = StateDisplaying
	return nil
}
