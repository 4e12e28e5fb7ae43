package models

import (
	"time"

	"gorm.io/gorm"
)

// Registration represents a participant's registration for an event.
// A soft-deleted registration is a cancelled one; the partial unique index
// allows re-registering after a cancellation.
type Registration struct {
	ID            string         `json:"id" gorm:"primaryKey;type:uuid"`
	EventID       string         `json:"eventId" gorm:"type:uuid;not null;uniqueIndex:uniq_live_registration,where:deleted_at IS NULL"`
	ParticipantID string         `json:"participantId" gorm:"type:uuid;not null;uniqueIndex:uniq_live_registration;index"`
	CreatedAt     time.Time      `json:"createdAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
