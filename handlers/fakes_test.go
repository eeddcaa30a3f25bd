package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"promptgallery/handlers"
	"promptgallery/media"
	"promptgallery/models"
	"promptgallery/repository"
	"promptgallery/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUploader struct {
	calls    int
	tooLarge bool
	fail     bool
}

func (u *fakeUploader) Upload(_ context.Context, payload string) (string, error) {
	u.calls++
	if u.tooLarge {
		return "", fmt.Errorf("%w: File size too large", media.ErrPayloadTooLarge)
	}
	if u.fail {
		return "", fmt.Errorf("%w: host unreachable", media.ErrUpload)
	}
	if payload == "" {
		return "", media.ErrUpload
	}
	return fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/posts/img%d", u.calls), nil
}

// fakePostStore keeps posts in insertion order and resolves owners from the
// shared user map, mirroring the repository contract.
type fakePostStore struct {
	posts   []models.Post
	users   map[primitive.ObjectID]models.User
	failAll bool
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *fakePostStore) withOwner(post models.Post) models.Post {
	if post.UserRef != nil {
		if user, ok := s.users[*post.UserRef]; ok {
			post.User = &user
		}
	}
	return post
}

func (s *fakePostStore) Create(_ context.Context, fields repository.PostFields) (models.Post, error) {
	if s.failAll {
		return models.Post{}, fmt.Errorf("storage down")
	}
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Name:      fields.Name,
		Prompt:    fields.Prompt,
		Photo:     fields.Photo,
		UserRef:   fields.UserRef,
		CreatedAt: time.Now().Unix(),
	}
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *fakePostStore) FindAll(context.Context) ([]models.Post, error) {
	if s.failAll {
		return nil, fmt.Errorf("storage down")
	}
	out := make([]models.Post, len(s.posts))
	for i, post := range s.posts {
		out[i] = s.withOwner(post)
	}
	return out, nil
}

func (s *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Post, error) {
	if s.failAll {
		return models.Post{}, fmt.Errorf("storage down")
	}
	for _, post := range s.posts {
		if post.ID == id {
			return s.withOwner(post), nil
		}
	}
	return models.Post{}, repository.ErrNotFound
}

func (s *fakePostStore) UpdateOwner(_ context.Context, id primitive.ObjectID, userRef *primitive.ObjectID) (models.Post, error) {
	for i, post := range s.posts {
		if post.ID == id {
			s.posts[i].UserRef = userRef
			return s.posts[i], nil
		}
	}
	return models.Post{}, repository.ErrNotFound
}

func (s *fakePostStore) Delete(_ context.Context, id primitive.ObjectID) (models.Post, error) {
	for i, post := range s.posts {
		if post.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return post, nil
		}
	}
	return models.Post{}, repository.ErrNotFound
}

// fakeUserStore mirrors the user repository contract, including the
// validate-before-write password check and keep-old-value partial updates.
type fakeUserStore struct {
	users   []models.User
	creates int
	updates int
}

func (s *fakeUserStore) Create(_ context.Context, fields repository.UserFields) (models.User, error) {
	if fields.Password != fields.ConfirmPassword {
		return models.User{}, repository.ErrPasswordMismatch
	}
	s.creates++
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         fields.Name,
		Email:        fields.Email,
		PasswordHash: "hashed:" + fields.Password,
		CreatedAt:    time.Now().Unix(),
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *fakeUserStore) FindAll(context.Context) ([]models.User, error) {
	return append([]models.User{}, s.users...), nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) Update(_ context.Context, id primitive.ObjectID, fields repository.UserFields) (models.User, error) {
	if fields.Password != fields.ConfirmPassword {
		return models.User{}, repository.ErrPasswordMismatch
	}
	for i, user := range s.users {
		if user.ID != id {
			continue
		}
		s.updates++
		if fields.Name != "" {
			user.Name = fields.Name
		}
		if fields.Email != "" {
			user.Email = fields.Email
		}
		if fields.Password != "" {
			user.PasswordHash = "hashed:" + fields.Password
		}
		s.users[i] = user
		return user, nil
	}
	return models.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

type testEnv struct {
	router   *gin.Engine
	posts    *fakePostStore
	users    *fakeUserStore
	uploader *fakeUploader
}

func newTestEnv() *testEnv {
	posts := newFakePostStore()
	users := &fakeUserStore{}
	uploader := &fakeUploader{}
	router := routes.SetupRouter(
		handlers.NewPostHandler(posts, uploader),
		handlers.NewUserHandler(users),
	)
	return &testEnv{router: router, posts: posts, users: users, uploader: uploader}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}
