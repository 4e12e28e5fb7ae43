package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

// RegistrationService handles business logic for event registrations
type RegistrationService struct {
	registrations *repositories.RegistrationRepository
	events        *repositories.EventRepository
	users         *repositories.UserRepository
	notifier      *Notifier
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	registrations *repositories.RegistrationRepository,
	events *repositories.EventRepository,
	users *repositories.UserRepository,
	notifier *Notifier,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		users:         users,
		notifier:      notifier,
	}
}

// Create registers the acting principal for an event. Registration is only
// permitted against an active event whose date is still in the future.
func (s *RegistrationService) Create(ctx context.Context, p Principal, eventID string) (models.Registration, error) {
	if err := CanRegister(p); err != nil {
		return models.Registration{}, err
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Registration{}, fmt.Errorf("invalid or inactive event: %w", models.ErrInvalidInput)
		}
		return models.Registration{}, err
	}
	if event.Status != models.EventStatusActive {
		return models.Registration{}, fmt.Errorf("invalid or inactive event: %w", models.ErrInvalidInput)
	}
	if event.Date.Before(time.Now()) {
		return models.Registration{}, fmt.Errorf("event has already occurred: %w", models.ErrInvalidInput)
	}

	registration := models.Registration{
		EventID:       eventID,
		ParticipantID: p.ID,
	}
	if err := s.registrations.Create(ctx, &registration); err != nil {
		return models.Registration{}, err
	}

	s.notifyParticipant(ctx, p.ID, event, true)
	return registration, nil
}

// List retrieves the acting principal's own registrations, paginated
func (s *RegistrationService) List(ctx context.Context, p Principal, filter dto.RegistrationFilter) (dto.RegistrationListResponse, error) {
	filter.PageRequest = filter.Normalized()

	registrations, totalCount, err := s.registrations.ListByParticipant(ctx, p.ID, filter)
	if err != nil {
		return dto.RegistrationListResponse{}, err
	}
	return dto.RegistrationListResponse{
		Items: registrations,
		Meta:  dto.NewListMeta(filter.PageRequest, len(registrations), totalCount),
	}, nil
}

// Cancel soft-deletes a registration, permitted only to the participant who
// created it
func (s *RegistrationService) Cancel(ctx context.Context, p Principal, id string) error {
	registration, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanCancelRegistration(p, registration); err != nil {
		return err
	}
	if err := s.registrations.SoftDelete(ctx, id); err != nil {
		return err
	}

	// The event may have been soft-deleted since; the cancellation itself
	// stands either way.
	if event, err := s.events.FindByID(ctx, registration.EventID); err == nil {
		s.notifyParticipant(ctx, p.ID, event, false)
	}
	return nil
}

func (s *RegistrationService) notifyParticipant(ctx context.Context, participantID string, event models.Event, confirmed bool) {
	user, err := s.users.FindByID(ctx, participantID)
	if err != nil {
		log.Printf("notification: participant %s lookup failed: %v", participantID, err)
		return
	}
	if confirmed {
		s.notifier.SendRegistrationConfirmed(ctx, user, event)
	} else {
		s.notifier.SendRegistrationCancelled(ctx, user, event)
	}
}
