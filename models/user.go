package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents user role types
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleParticipant:
		return true
	}
	return false
}

// User represents a user in the system.
// Email is unique among live (non-deleted) users only: the partial unique
// index frees the address again once the account is soft-deleted.
type User struct {
	ID              string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name            string         `json:"name" gorm:"not null"`
	Email           string         `json:"email" gorm:"not null;uniqueIndex:uniq_users_live_email,where:deleted_at IS NULL"`
	Password        string         `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Phone           string         `json:"phone" gorm:"default:null"`
	ProfileImageURL string         `json:"profileImageUrl" gorm:"default:null"`
	Role            Role           `json:"role" gorm:"type:varchar(15);default:'participant'"`
	IsActive        bool           `json:"isActive" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
