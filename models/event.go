package models

import (
	"time"

	"gorm.io/gorm"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventStatusActive   EventStatus = "active"
	EventStatusInactive EventStatus = "inactive"
)

// IsValid reports whether the status is one of the known statuses
func (s EventStatus) IsValid() bool {
	return s == EventStatusActive || s == EventStatusInactive
}

// Event represents an event created by an organizer.
// The name is unique among live, active events only; soft-deleting an event
// (which also flips it to inactive) frees the name for reuse.
type Event struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex:uniq_events_live_name,where:deleted_at IS NULL AND status = 'active'"`
	Description string         `json:"description" gorm:"default:null"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	ImageURL    string         `json:"imageUrl" gorm:"default:null"`
	OrganizerID string         `json:"organizerId" gorm:"type:uuid;not null;index"`
	Status      EventStatus    `json:"status" gorm:"type:varchar(10);not null;default:'active'"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
