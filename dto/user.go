package dto

import "github.com/eventra-api/models"

// UpdateUserRequest carries a partial user update; nil fields are left
// untouched and only fields whose value actually differs are written
type UpdateUserRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Password        *string `json:"password" binding:"omitempty,min=6"`
	Phone           *string `json:"phone"`
	ProfileImageURL *string `json:"-"`
}

// UserFilter represents the optional criteria for listing users
type UserFilter struct {
	Name  string      `form:"name"`
	Email string      `form:"email"`
	Role  models.Role `form:"role" binding:"omitempty,oneof=admin organizer participant"`
	PageRequest
}

// UserListResponse is a page of users plus pagination metadata
type UserListResponse struct {
	Items []models.User `json:"items"`
	Meta  ListMeta      `json:"meta"`
}
