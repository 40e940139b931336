package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/handlers"
	"github.com/trackline-dev/trackline/internal/logger"
	"github.com/trackline-dev/trackline/internal/middleware"
	"github.com/trackline-dev/trackline/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	// Wrong verb on a known path answers 405, not 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/verify", handlers.Verify)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		// The key in the path is the credential itself, so this stays open
		// like login
		api.GET("/users/by-secret-key/:key", handlers.GetUserBySecretKey)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/users", handlers.ListUsers)

			authed.GET("/accounts", handlers.GetAccounts)
			authed.POST("/accounts", handlers.CreateAccount)

			authed.GET("/projects", handlers.GetProjects)
			authed.POST("/projects", handlers.CreateProject)
			authed.PATCH("/projects/:id", handlers.UpdateProject)

			authed.GET("/tasks", handlers.GetTasks)
			authed.POST("/tasks", handlers.CreateTask)
			authed.PATCH("/tasks/:id", handlers.UpdateTask)

			authed.GET("/updates", handlers.GetUpdates)
			authed.POST("/updates", handlers.CreateUpdate)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/users", handlers.AdminListUsers)
			admin.GET("/accounts", handlers.AdminListAccounts)
			admin.GET("/projects", handlers.AdminListProjects)
			admin.GET("/tasks", handlers.AdminListTasks)
			admin.GET("/updates", handlers.AdminListUpdates)
		}
	}

	return r
}
