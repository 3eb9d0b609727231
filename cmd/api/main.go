package main

import (
	"context"
	"log"
	"os"

	"dev-eval-api/config"
	"dev-eval-api/middleware"
	"dev-eval-api/notifications"
	"dev-eval-api/routes"
	"dev-eval-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitLogging()

	// Initialize database
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Object store for profile pictures and source archives
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	storage, err := services.NewStorage(uploadPath, os.Getenv("PUBLIC_BASE_URL"))
	if err != nil {
		log.Fatal("Failed to prepare upload directories:", err)
	}

	// Realtime hub, with optional Redis fan-out across instances
	hub := notifications.NewHub()
	var notifier *notifications.Notifier
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		notifier = notifications.NewNotifier(rdb)
		if err := notifier.StartSubscriber(context.Background(), hub); err != nil {
			log.Printf("Warning: Failed to start realtime subscriber: %v", err)
		}
	}

	mailer := config.MailerFromEnv()
	allowRedecide := os.Getenv("ALLOW_REDECIDE") != "false"
	workflow := services.NewWorkflow(db, hub, notifier, services.NewDecisionMailer(mailer), allowRedecide)

	// Setup routes
	routes.SetupRoutes(router, routes.Deps{
		DB:       db,
		Storage:  storage,
		Workflow: workflow,
		Hub:      hub,
		Mailer:   mailer,
	})

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Database connected successfully")
	if allowRedecide {
		log.Printf("Decisions may be revised after approval/rejection")
	}
	if notifier.Enabled() {
		log.Printf("Realtime events fan out through Redis")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
