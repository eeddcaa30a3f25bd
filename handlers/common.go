package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"promptgallery/models"
	"promptgallery/repository"
)

const requestTimeout = 10 * time.Second

// PostStore is the slice of the post repository the handlers need.
type PostStore interface {
	Create(ctx context.Context, fields repository.PostFields) (models.Post, error)
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Post, error)
	UpdateOwner(ctx context.Context, id primitive.ObjectID, userRef *primitive.ObjectID) (models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Post, error)
}

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, fields repository.UserFields) (models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields repository.UserFields) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

// Every endpoint answers with the same envelope: {success, data} on the
// happy path, {success, message} otherwise.
func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}
