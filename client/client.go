// Package client is a Go port of the gallery front end's data layer: a thin
// JSON client for the posts API plus the sequential navigator that drives
// the image view.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Post mirrors the API's post envelope payload.
type Post struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Prompt    string `json:"prompt"`
	Photo     string `json:"photo"`
	CreatedAt int64  `json:"createdAt"`
	User      *User  `json:"userRef,omitempty"`
}

type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
	Posts     []Post `json:"posts,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// APIError carries the status code and the server's envelope message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// NotFound reports whether err is the server's explicit not-found answer.
func NotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if res.StatusCode != http.StatusOK || !env.Success {
		return &APIError{StatusCode: res.StatusCode, Message: env.Message}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

// ListPosts fetches the whole collection in insertion order.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+id, nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (c *Client) GetPostOwner(ctx context.Context, id string) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+id+"/user", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

type CreatePostInput struct {
	Name    string `json:"name"`
	Prompt  string `json:"prompt"`
	Photo   string `json:"photo"` // data URI or base64 payload
	UserRef string `json:"userRef,omitempty"`
}

func (c *Client) CreatePost(ctx context.Context, input CreatePostInput) (Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", input, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) (Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodDelete, "/api/posts/"+id, nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}
