package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
)

// RegistrationRepository handles database operations for event registrations
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository using the
// shared connection
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a new registration. The partial unique index on
// (event_id, participant_id) rejects a second live registration for the
// same event; a cancelled one does not count.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	if registration.ID == "" {
		registration.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("already registered for this event: %w", models.ErrConflict)
		}
		return err
	}
	return nil
}

// FindByID retrieves a live registration by ID; cancelled ones are invisible
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).First(&registration, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Registration{}, fmt.Errorf("registration %q: %w", id, models.ErrNotFound)
		}
		return models.Registration{}, err
	}
	return registration, nil
}

// ListByParticipant retrieves the live registrations of one participant,
// paginated
func (r *RegistrationRepository) ListByParticipant(ctx context.Context, participantID string, filter dto.RegistrationFilter) ([]models.Registration, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("participant_id = ?", participantID)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var registrations []models.Registration
	err := query.Order("created_at DESC, id").
		Limit(filter.Limit).Offset(filter.Offset()).
		Find(&registrations).Error
	if err != nil {
		return nil, 0, err
	}
	return registrations, totalCount, nil
}

// SoftDelete cancels a live registration. The row is kept with its
// cancellation timestamp.
func (r *RegistrationRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Registration{}).Where("id = ?", id).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("registration %q: %w", id, models.ErrNotFound)
	}
	return nil
}
