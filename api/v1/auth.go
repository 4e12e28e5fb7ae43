package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/middleware"
	"github.com/eventra-api/services"
)

// AuthController handles authentication-related API endpoints
type AuthController struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, userService *services.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

// RegisterRoutes registers auth routes
func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup, registerLimiter, loginLimiter gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", registerLimiter, ac.Register)
		authGroup.POST("/login", loginLimiter, ac.Login)
		authGroup.POST("/logout", ac.Logout)
		authGroup.GET("/verify-email", ac.VerifyEmail)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(), ac.Me)
	}
}

// Register handles user registration
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest

	// Parse request body
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest

	// Parse request body
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	authResponse, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Authentication failed", err)
		return
	}

	// Set token as HttpOnly cookie (expires in 24 hours)
	c.SetCookie(
		"access_token",     // name
		authResponse.Token, // value
		86400,              // max age (24 hours in seconds)
		"/",                // path
		"",                 // domain
		true,               // secure (HTTPS only)
		true,               // httpOnly (not accessible via JS)
	)

	// Also return token in response body for clients that prefer Bearer auth
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   authResponse,
	})
}

// Logout handles user logout
func (ac *AuthController) Logout(c *gin.Context) {
	// Clear the cookie by setting max-age to -1 (expired)
	c.SetCookie(
		"access_token", // name
		"",             // value (empty)
		-1,             // max age (expired)
		"/",            // path
		"",             // domain
		true,           // secure (HTTPS only)
		true,           // httpOnly (not accessible via JS)
	)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// VerifyEmail activates the account referenced by the verification token
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Verification token is required",
		})
		return
	}

	message, err := ac.authService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		respondError(c, "Email verification failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
	})
}

// Me returns the currently authenticated user's profile
func (ac *AuthController) Me(c *gin.Context) {
	p := principalFrom(c)

	user, err := ac.userService.Get(c.Request.Context(), p, p.ID)
	if err != nil {
		respondError(c, "Failed to retrieve user profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}
