package dto

import "github.com/eventra-api/models"

// CreateRegistrationRequest represents the payload for registering for an event
type CreateRegistrationRequest struct {
	EventID string `json:"eventId" binding:"required,uuid"`
}

// RegistrationFilter represents the criteria for listing registrations
type RegistrationFilter struct {
	PageRequest
}

// RegistrationListResponse is a page of registrations plus pagination metadata
type RegistrationListResponse struct {
	Items []models.Registration `json:"items"`
	Meta  ListMeta              `json:"meta"`
}
