package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/middleware"
	"github.com/eventra-api/models"
	"github.com/eventra-api/services"
)

// UserController handles user-related API endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers user routes. All routes require authentication;
// listing is additionally restricted to admins and organizers.
func (uc *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer), uc.ListUsers)
		users.GET("/:id", uc.GetUser)
		users.PATCH("/:id", uc.UpdateUser)
		users.DELETE("/:id", uc.DeleteUser)
		users.PATCH("/:id/profile-image", uc.UploadProfileImage)
	}
}

// ListUsers retrieves users matching the query filters
func (uc *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}

	result, err := uc.userService.List(ctx.Request.Context(), principalFrom(ctx), filter)
	if err != nil {
		respondError(ctx, "Failed to list users", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// GetUser retrieves a single user by ID
func (uc *UserController) GetUser(ctx *gin.Context) {
	user, err := uc.userService.Get(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to retrieve user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}

// UpdateUser applies a partial update to a user
func (uc *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	if err := uc.userService.Update(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), req); err != nil {
		respondError(ctx, "Failed to update user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User updated successfully",
	})
}

// DeleteUser soft-deletes a user account
func (uc *UserController) DeleteUser(ctx *gin.Context) {
	if err := uc.userService.SoftDelete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, "Failed to delete user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deleted successfully",
	})
}

// UploadProfileImage replaces the user's profile image
func (uc *UserController) UploadProfileImage(ctx *gin.Context) {
	data, err := readImageUpload(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid image upload",
			"error":   err.Error(),
		})
		return
	}

	url, err := uc.userService.UpdateProfileImage(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), data)
	if err != nil {
		respondError(ctx, "Failed to upload profile image", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile image updated successfully",
		"url":     url,
	})
}
