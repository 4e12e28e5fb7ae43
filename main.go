package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	v1 "github.com/eventra-api/api/v1"
	"github.com/eventra-api/config"
	"github.com/eventra-api/database"
	"github.com/eventra-api/lib/mailer"
	"github.com/eventra-api/lib/storage"
	"github.com/eventra-api/middleware"
	"github.com/eventra-api/repositories"
	"github.com/eventra-api/services"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Connect to the database and run migrations
	conn, err := database.NewConnection(config.GetEnv("DATABASE_URL", ""))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Optional Redis client for response caching
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Printf("✅ Response cache enabled (redis at %s)", addr)
	} else {
		log.Println("⚠️ REDIS_ADDR not set, response caching disabled")
	}

	// Optional object storage for profile and event images
	var images services.ImageStore
	if client, err := storage.NewClientFromEnv(); err != nil {
		log.Printf("⚠️ Object storage disabled: %v", err)
	} else {
		images = client
		log.Println("✅ Object storage enabled")
	}

	// Transactional email; falls back to log-and-skip when unconfigured
	notifier := services.NewNotifier(mailer.NewFromEnv())
	if notifier.Enabled() {
		log.Println("✅ Email notifications enabled")
	} else {
		log.Println("⚠️ SMTP not configured, email notifications disabled")
	}

	// Wire repositories, services and controllers
	userRepo := repositories.NewUserRepository(conn.DB)
	eventRepo := repositories.NewEventRepository(conn.DB)
	registrationRepo := repositories.NewRegistrationRepository(conn.DB)

	deps := v1.Deps{
		Auth:          services.NewAuthService(userRepo, notifier),
		Users:         services.NewUserService(userRepo, notifier, images),
		Events:        services.NewEventService(eventRepo, images),
		Registrations: services.NewRegistrationService(registrationRepo, eventRepo, userRepo, notifier),
		Redis:         rdb,
	}

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Global per-IP rate limit
	globalLimiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     float64(config.GetEnvInt("RATE_LIMIT_RPS", 20)),
		Burst:   config.GetEnvInt("RATE_LIMIT_BURST", 40),
		IdleTTL: 10 * time.Minute,
	})
	defer globalLimiter.Stop()
	router.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return c.ClientIP()
	}))

	// Register v1 API routes
	apiV1 := router.Group("/api/v1")
	v1.RegisterRoutes(apiV1, deps)

	// Get port from environment or use default
	port := config.GetEnv("PORT", "8080")

	// Start server
	log.Printf("🚀 Eventra API starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
