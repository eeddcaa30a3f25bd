package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"promptgallery/repository"
)

type UserHandler struct {
	store UserStore
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

type createUserRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type updateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all fields")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.store.Create(ctx, repository.UserFields{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if errors.Is(err, repository.ErrPasswordMismatch) {
		respondError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if err != nil {
		log.Printf("[CreateUser] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Unable to create a user, please try again")
		return
	}

	respondData(c, user)
}

// ListUsers returns every user with their owned posts expanded.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.store.FindAll(ctx)
	if err != nil {
		log.Printf("[ListUsers] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Fetching users failed, please try again")
		return
	}

	respondData(c, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("[GetUser] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Fetching user failed, please try again")
		return
	}

	respondData(c, user)
}

// UpdateUser applies the provided fields, keeping stored values for omitted
// ones. A mismatched password pair rejects the whole update before any
// write.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all fields")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.store.Update(ctx, id, repository.UserFields{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if errors.Is(err, repository.ErrPasswordMismatch) {
		respondError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("[UpdateUser] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Updating user failed, please try again")
		return
	}

	respondData(c, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("[DeleteUser] storage error: %v", err)
		respondError(c, http.StatusInternalServerError, "Deleting user failed, please try again")
		return
	}

	respondData(c, user)
}
