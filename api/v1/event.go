package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/middleware"
	"github.com/eventra-api/models"
	"github.com/eventra-api/services"
	"github.com/eventra-api/utils"
)

// eventCacheTTL bounds staleness of cached public event reads
const eventCacheTTL = 30 * time.Second

// EventController handles event-related API endpoints
type EventController struct {
	eventService *services.EventService
	invalidator  *utils.CacheInvalidator
}

// NewEventController creates a new event controller
func NewEventController(eventService *services.EventService, invalidator *utils.CacheInvalidator) *EventController {
	return &EventController{
		eventService: eventService,
		invalidator:  invalidator,
	}
}

// RegisterRoutes registers event routes. Reads are public and cached;
// mutations require an authenticated organizer or admin.
func (ec *EventController) RegisterRoutes(router *gin.RouterGroup, rdb *redis.Client) {
	events := router.Group("/events")
	{
		events.GET("", middleware.ResponseCache(rdb, eventCacheTTL), ec.ListEvents)
		events.GET("/:id", middleware.ResponseCache(rdb, eventCacheTTL), ec.GetEvent)
	}

	manage := router.Group("/events")
	manage.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer))
	{
		manage.POST("", ec.CreateEvent)
		manage.PATCH("/:id", ec.UpdateEvent)
		manage.DELETE("/:id", ec.DeleteEvent)
		manage.PATCH("/:id/image", ec.UploadEventImage)
	}
}

// ListEvents retrieves events matching the query filters
func (ec *EventController) ListEvents(ctx *gin.Context) {
	var filter dto.EventFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondBindError(ctx, err)
		return
	}

	result, err := ec.eventService.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, "Failed to list events", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// GetEvent retrieves a single event by ID
func (ec *EventController) GetEvent(ctx *gin.Context) {
	event, err := ec.eventService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Failed to retrieve event", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"event":  event,
	})
}

// CreateEvent creates a new event owned by the caller
func (ec *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	event, err := ec.eventService.Create(ctx.Request.Context(), principalFrom(ctx), req)
	if err != nil {
		respondError(ctx, "Failed to create event", err)
		return
	}

	ec.invalidator.PurgeEventLists(ctx.Request.Context())

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Event created successfully",
		"event":   event,
	})
}

// UpdateEvent applies a partial update to an event
func (ec *EventController) UpdateEvent(ctx *gin.Context) {
	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	if err := ec.eventService.Update(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), req); err != nil {
		respondError(ctx, "Failed to update event", err)
		return
	}

	ec.invalidator.PurgeEventLists(ctx.Request.Context())
	ec.invalidator.PurgeEventItems(ctx.Request.Context())

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Event updated successfully",
	})
}

// DeleteEvent soft-deletes an event
func (ec *EventController) DeleteEvent(ctx *gin.Context) {
	if err := ec.eventService.SoftDelete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, "Failed to delete event", err)
		return
	}

	ec.invalidator.PurgeEventLists(ctx.Request.Context())
	ec.invalidator.PurgeEventItems(ctx.Request.Context())

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Event deleted successfully",
	})
}

// UploadEventImage replaces the event's cover image
func (ec *EventController) UploadEventImage(ctx *gin.Context) {
	data, err := readImageUpload(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid image upload",
			"error":   err.Error(),
		})
		return
	}

	url, err := ec.eventService.UpdateImage(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), data)
	if err != nil {
		respondError(ctx, "Failed to upload event image", err)
		return
	}

	ec.invalidator.PurgeEventLists(ctx.Request.Context())
	ec.invalidator.PurgeEventItems(ctx.Request.Context())

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Event image updated successfully",
		"url":     url,
	})
}
