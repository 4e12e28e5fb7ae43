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

// EventRepository handles database operations for events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository using the shared connection
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event. Name uniqueness among live, active events is
// enforced by the partial unique index; a duplicate surfaces as
// models.ErrConflict straight from the write.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = models.EventStatusActive
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("event name already exists: %w", models.ErrConflict)
		}
		return err
	}
	return nil
}

// FindByID retrieves a live event by ID; soft-deleted events are invisible
func (r *EventRepository) FindByID(ctx context.Context, id string) (models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, fmt.Errorf("event %q: %w", id, models.ErrNotFound)
		}
		return models.Event{}, err
	}
	return event, nil
}

// FindByName retrieves a live event by exact name
func (r *EventRepository) FindByName(ctx context.Context, name string) (models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, fmt.Errorf("event named %q: %w", name, models.ErrNotFound)
		}
		return models.Event{}, err
	}
	return event, nil
}

// Update applies a field-granular update: only fields whose value actually
// differs from the stored record are written; an empty change set performs
// no write and leaves UpdatedAt untouched.
func (r *EventRepository) Update(ctx context.Context, id string, changes dto.UpdateEventRequest) error {
	event, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	set := map[string]interface{}{}
	if changes.Name != nil && *changes.Name != event.Name {
		set["name"] = *changes.Name
	}
	if changes.Description != nil && *changes.Description != event.Description {
		set["description"] = *changes.Description
	}
	if changes.Date != nil && !changes.Date.Equal(event.Date) {
		set["date"] = *changes.Date
	}
	if changes.ImageURL != nil && *changes.ImageURL != event.ImageURL {
		set["image_url"] = *changes.ImageURL
	}

	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = time.Now()

	err = r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Updates(set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("event name already in use: %w", models.ErrConflict)
		}
		return err
	}
	return nil
}

// SoftDelete marks a live event as deleted and flips it to inactive,
// freeing its name for reuse. The row is never removed.
func (r *EventRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"status":     models.EventStatusInactive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event %q: %w", id, models.ErrNotFound)
	}
	return nil
}

// List retrieves events matching the filter, paginated. Status defaults to
// active when unspecified; asking for inactive events deliberately includes
// the soft-deleted rows, since soft deletion is what makes an event
// inactive. Name is a substring match and the date filter is an inclusive
// lower bound.
func (r *EventRepository) List(ctx context.Context, filter dto.EventFilter) ([]models.Event, int64, error) {
	status := filter.Status
	if status == "" {
		status = models.EventStatusActive
	}

	query := r.db.WithContext(ctx).Model(&models.Event{})
	if status == models.EventStatusInactive {
		query = query.Unscoped()
	}
	query = query.Where("status = ?", status)

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := query.Order("date ASC, id").
		Limit(filter.Limit).Offset(filter.Offset()).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, totalCount, nil
}
