package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/middleware"
	"github.com/eventra-api/models"
	"github.com/eventra-api/services"
)

// RegistrationController handles event-registration API endpoints
type RegistrationController struct {
	registrationService *services.RegistrationService
}

// NewRegistrationController creates a new registration controller
func NewRegistrationController(registrationService *services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// RegisterRoutes registers registration routes. Admins manage events, not
// attendance, so they are excluded here.
func (rc *RegistrationController) RegisterRoutes(router *gin.RouterGroup) {
	registrations := router.Group("/registrations")
	registrations.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleParticipant, models.RoleOrganizer))
	{
		registrations.POST("", rc.CreateRegistration)
		registrations.GET("", rc.ListRegistrations)
		registrations.DELETE("/:id", rc.CancelRegistration)
	}
}

// CreateRegistration registers the caller for an event
func (rc *RegistrationController) CreateRegistration(ctx *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	registration, err := rc.registrationService.Create(ctx.Request.Context(), principalFrom(ctx), req.EventID)
	if err != nil {
		respondError(ctx, "Failed to register for event", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":       "success",
		"message":      "Registered for event successfully",
		"registration": registration,
	})
}

// ListRegistrations retrieves the caller's registrations
func (rc *RegistrationController) ListRegistrations(ctx *gin.Context) {
	var filter dto.RegistrationFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}

	result, err := rc.registrationService.List(ctx.Request.Context(), principalFrom(ctx), filter)
	if err != nil {
		respondError(ctx, "Failed to list registrations", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// CancelRegistration cancels one of the caller's registrations
func (rc *RegistrationController) CancelRegistration(ctx *gin.Context) {
	if err := rc.registrationService.Cancel(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, "Failed to cancel registration", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Registration cancelled successfully",
	})
}
