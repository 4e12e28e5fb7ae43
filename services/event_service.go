package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

// EventService handles business logic for events
type EventService struct {
	events *repositories.EventRepository
	images ImageStore
}

// NewEventService creates a new event service instance
func NewEventService(events *repositories.EventRepository, images ImageStore) *EventService {
	return &EventService{events: events, images: images}
}

// Create creates a new active event owned by the acting organizer
func (s *EventService) Create(ctx context.Context, p Principal, req dto.CreateEventRequest) (models.Event, error) {
	if err := CanCreateEvent(p); err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		OrganizerID: p.ID,
		Status:      models.EventStatusActive,
	}
	if err := s.events.Create(ctx, &event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// Get retrieves a live event by ID
func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	return s.events.FindByID(ctx, id)
}

// List retrieves events with filtering and pagination
func (s *EventService) List(ctx context.Context, filter dto.EventFilter) (dto.EventListResponse, error) {
	filter.PageRequest = filter.Normalized()

	events, totalCount, err := s.events.List(ctx, filter)
	if err != nil {
		return dto.EventListResponse{}, err
	}
	return dto.EventListResponse{
		Items: events,
		Meta:  dto.NewListMeta(filter.PageRequest, len(events), totalCount),
	}, nil
}

// Update applies a partial update to an event, permitted only to the owning
// organizer or an admin
func (s *EventService) Update(ctx context.Context, p Principal, id string, req dto.UpdateEventRequest) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanManageEvent(p, event); err != nil {
		return err
	}
	return s.events.Update(ctx, id, req)
}

// SoftDelete removes an event (soft delete, status flips to inactive),
// permitted only to the owning organizer or an admin
func (s *EventService) SoftDelete(ctx context.Context, p Principal, id string) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanManageEvent(p, event); err != nil {
		return err
	}
	return s.events.SoftDelete(ctx, id)
}

// UpdateImage uploads a new event image and stores its URL on the event
func (s *EventService) UpdateImage(ctx context.Context, p Principal, id string, data []byte) (string, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := CanManageEvent(p, event); err != nil {
		return "", err
	}
	if s.images == nil {
		return "", errors.New("object storage is not configured")
	}

	url, err := s.images.UploadImage(ctx, data, id, "events")
	if err != nil {
		return "", fmt.Errorf("event image upload: %w", err)
	}
	if err := s.events.Update(ctx, id, dto.UpdateEventRequest{ImageURL: &url}); err != nil {
		return "", err
	}

	// Best-effort cleanup of the replaced image
	if event.ImageURL != "" {
		if err := s.images.DeleteByURL(ctx, event.ImageURL); err != nil {
			log.Printf("event image cleanup for event %s: %v", id, err)
		}
	}
	return url, nil
}
