package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"promptgallery/handlers"
)

func SetupRouter(posts *handlers.PostHandler, users *handlers.UserHandler) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "promptgallery API is running",
			"time":    time.Now().Unix(),
		})
	})

	// CORS for the React gallery front end
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")

	// Posts
	api.POST("/posts", posts.CreatePost)
	api.GET("/posts", posts.ListPosts)
	api.GET("/posts/:id", posts.GetPost)
	api.PATCH("/posts/:id", posts.UpdatePostOwner)
	api.DELETE("/posts/:id", posts.DeletePost)
	api.GET("/posts/:id/user", posts.GetPostOwner)

	// Users
	api.POST("/users", users.CreateUser)
	api.GET("/users", users.ListUsers)
	api.GET("/users/:id", users.GetUser)
	api.PATCH("/users/:id", users.UpdateUser)
	api.DELETE("/users/:id", users.DeleteUser)

	// Undefined API routes answer JSON instead of Gin's default 404 page
	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"success": false,
				"message": "Endpoint not found",
			})
			return
		}
		c.Next()
	})

	return router
}
