package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/config"
	"github.com/teamtrackhq/teamtrack-api/internal/database"
	"github.com/teamtrackhq/teamtrack-api/internal/handlers"
	"github.com/teamtrackhq/teamtrack-api/internal/middleware"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"github.com/teamtrackhq/teamtrack-api/internal/services"
	"github.com/teamtrackhq/teamtrack-api/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token manager: secret resolved once, passed explicitly
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// Repositories and services
	userRepo := repository.NewUserRepository(database.GetDB(), cfg.QueryTimeout)
	taskRepo := repository.NewTaskRepository(database.GetDB(), cfg.QueryTimeout)
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TeamTrack API is running",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/team/add", middleware.RequireAuth(tokens), authHandler.AddTeamMember)
			auth.GET("/teams/:organizationId", middleware.RequireAuth(tokens), authHandler.ListTeam)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:taskId", taskHandler.GetTask)
			tasks.PATCH("/:taskId", taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
