package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"promptgallery/media"
	"promptgallery/repository"
)

type PostHandler struct {
	store    PostStore
	uploader media.Uploader
}

func NewPostHandler(store PostStore, uploader media.Uploader) *PostHandler {
	return &PostHandler{store: store, uploader: uploader}
}

type createPostRequest struct {
	Name    string `json:"name" binding:"required"`
	Prompt  string `json:"prompt" binding:"required"`
	Photo   string `json:"photo" binding:"required"`
	UserRef string `json:"userRef"`
}

type updatePostRequest struct {
	UserRef string `json:"userRef"`
}

// CreatePost uploads the submitted image and persists the post. The stored
// photo field is always the hosted URL, never the submitted payload.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all fields")
		return
	}

	var userRef *primitive.ObjectID
	if req.UserRef != "" {
		id, err := primitive.ObjectIDFromHex(req.UserRef)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user reference")
			return
		}
		userRef = &id
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	photoURL, err := h.uploader.Upload(ctx, req.Photo)
	if errors.Is(err, media.ErrPayloadTooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, "Image size too large. Please upload a smaller image")
		return
	}
	if err != nil {
		log.Printf("[CreatePost] upload error: %v", err)
		respondError(c, http.StatusInternalServerError, "Unable to create a post, please try again")
		return
	}

	post, err := h.store.Create(ctx, repository.PostFields{
		Name:    req.Name,
		Prompt:  req.Prompt,
		Photo:   photoURL,
		UserRef: userRef,
	})
	if err != nil {
		log.Printf("[CreatePost] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Unable to create a post, please try again")
		return
	}

	respondData(c, post)
}

// ListPosts returns every post in insertion order with owners expanded.
func (h *PostHandler) ListPosts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := h.store.FindAll(ctx)
	if err != nil {
		log.Printf("[ListPosts] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Fetching posts failed, please try again")
		return
	}

	respondData(c, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("[GetPost] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Fetching post failed, please try again")
		return
	}

	respondData(c, post)
}

// UpdatePostOwner replaces the post's owner reference. An empty userRef
// clears it.
func (h *PostHandler) UpdatePostOwner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all fields")
		return
	}

	var userRef *primitive.ObjectID
	if req.UserRef != "" {
		ref, err := primitive.ObjectIDFromHex(req.UserRef)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user reference")
			return
		}
		userRef = &ref
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.store.UpdateOwner(ctx, id, userRef)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("[UpdatePostOwner] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Updating post failed, please try again")
		return
	}

	respondData(c, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("[DeletePost] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Deleting post failed, please try again")
		return
	}

	respondData(c, post)
}

// GetPostOwner resolves the owner sub-resource of a post. A post without a
// resolvable owner is answered with 404 instead of falling over.
func (h *PostHandler) GetPostOwner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("[GetPostOwner] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Fetching user failed, please try again")
		return
	}

	if post.User == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respondData(c, post.User)
}
