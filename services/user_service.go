package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

// ImageStore uploads a normalized image for an owner under a path prefix and
// returns its public URL. DeleteByURL removes a previously uploaded image;
// URLs it does not recognize are ignored.
type ImageStore interface {
	UploadImage(ctx context.Context, data []byte, ownerID, pathPrefix string) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}

// UserService handles business logic for user accounts
type UserService struct {
	users    *repositories.UserRepository
	notifier *Notifier
	images   ImageStore
}

// NewUserService creates a new user service instance
func NewUserService(users *repositories.UserRepository, notifier *Notifier, images ImageStore) *UserService {
	return &UserService{users: users, notifier: notifier, images: images}
}

// Get retrieves a user record, visible only to the user themselves or an admin
func (s *UserService) Get(ctx context.Context, p Principal, id string) (models.User, error) {
	if err := CanAccessUser(p, id); err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(ctx, id)
}

// List retrieves users with filtering and pagination. Admins see every role
// (optionally filtered); organizers are always narrowed to participants.
func (s *UserService) List(ctx context.Context, p Principal, filter dto.UserFilter) (dto.UserListResponse, error) {
	effectiveRole, err := EffectiveUserListRole(p, filter.Role)
	if err != nil {
		return dto.UserListResponse{}, err
	}
	filter.Role = effectiveRole
	filter.PageRequest = filter.Normalized()

	users, totalCount, err := s.users.List(ctx, filter)
	if err != nil {
		return dto.UserListResponse{}, err
	}
	return dto.UserListResponse{
		Items: users,
		Meta:  dto.NewListMeta(filter.PageRequest, len(users), totalCount),
	}, nil
}

// Update applies a partial update to a user record. A provided password is
// re-hashed before it reaches the repository.
func (s *UserService) Update(ctx context.Context, p Principal, id string, req dto.UpdateUserRequest) error {
	if err := CanAccessUser(p, id); err != nil {
		return err
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hashedStr := string(hashed)
		req.Password = &hashedStr
	}
	return s.users.Update(ctx, id, req)
}

// SoftDelete removes a user account (soft delete) and dispatches a
// best-effort deletion notice
func (s *UserService) SoftDelete(ctx context.Context, p Principal, id string) error {
	if err := CanAccessUser(p, id); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.notifier.SendAccountDeleted(ctx, user)
	return nil
}

// UpdateProfileImage uploads a new profile image and stores its URL on the
// user record
func (s *UserService) UpdateProfileImage(ctx context.Context, p Principal, id string, data []byte) (string, error) {
	if err := CanAccessUser(p, id); err != nil {
		return "", err
	}
	if s.images == nil {
		return "", errors.New("object storage is not configured")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.images.UploadImage(ctx, data, id, "profiles")
	if err != nil {
		return "", fmt.Errorf("profile image upload: %w", err)
	}
	if err := s.users.Update(ctx, id, dto.UpdateUserRequest{ProfileImageURL: &url}); err != nil {
		return "", err
	}

	// Best-effort cleanup of the replaced image
	if user.ProfileImageURL != "" {
		if err := s.images.DeleteByURL(ctx, user.ProfileImageURL); err != nil {
			log.Printf("profile image cleanup for user %s: %v", id, err)
		}
	}
	return url, nil
}
