package dto

import (
	"time"

	"github.com/eventra-api/models"
)

// CreateEventRequest represents the payload for creating an event
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

// UpdateEventRequest carries a partial event update; nil fields are left
// untouched
type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	ImageURL    *string    `json:"-"`
}

// EventFilter represents the optional criteria for listing events.
// Status defaults to active when unspecified; inactive lists the
// soft-deleted events.
type EventFilter struct {
	Name     string             `form:"name"`
	DateFrom *time.Time         `form:"date" time_format:"2006-01-02"`
	Status   models.EventStatus `form:"status" binding:"omitempty,oneof=active inactive"`
	PageRequest
}

// EventListResponse is a page of events plus pagination metadata
type EventListResponse struct {
	Items []models.Event `json:"items"`
	Meta  ListMeta       `json:"meta"`
}
