package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/eventra-api/middleware"
	"github.com/eventra-api/services"
	"github.com/eventra-api/utils"
)

// Deps collects the services and infrastructure the v1 API depends on.
// Redis is optional; a nil client disables response caching and turns
// invalidation into a no-op.
type Deps struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Events        *services.EventService
	Registrations *services.RegistrationService
	Redis         *redis.Client
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Deps) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Credential endpoints get a tight per-IP limiter to slow down
	// brute-force and signup abuse
	authLimiter := middleware.NewRateLimiter(middleware.LimiterConfig{
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})
	byIP := func(route string) middleware.KeySelector {
		return func(c *gin.Context) string {
			return route + ":" + c.ClientIP()
		}
	}

	invalidator := utils.NewCacheInvalidator(deps.Redis)

	authController := NewAuthController(deps.Auth, deps.Users)
	authController.RegisterRoutes(router,
		authLimiter.Middleware(byIP("register")),
		authLimiter.Middleware(byIP("login")),
	)

	userController := NewUserController(deps.Users)
	userController.RegisterRoutes(router)

	eventController := NewEventController(deps.Events, invalidator)
	eventController.RegisterRoutes(router, deps.Redis)

	registrationController := NewRegistrationController(deps.Registrations)
	registrationController.RegisterRoutes(router)
}
