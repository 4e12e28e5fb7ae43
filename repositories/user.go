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

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository using the shared connection
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Email uniqueness among live users is enforced
// by the partial unique index, so there is no check-then-act window: a
// duplicate surfaces as models.ErrConflict straight from the write.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("email already exists: %w", models.ErrConflict)
		}
		return err
	}
	return nil
}

// FindByID retrieves a live user by ID; soft-deleted users are invisible
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %q: %w", id, models.ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByEmail retrieves a live user by exact email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user with email %q: %w", email, models.ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// Update applies a field-granular update: only fields whose value actually
// differs from the stored record are written. An empty change set performs
// no write at all, leaving UpdatedAt untouched.
func (r *UserRepository) Update(ctx context.Context, id string, changes dto.UpdateUserRequest) error {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	set := map[string]interface{}{}
	if changes.Name != nil && *changes.Name != user.Name {
		set["name"] = *changes.Name
	}
	if changes.Email != nil && *changes.Email != user.Email {
		set["email"] = *changes.Email
	}
	if changes.Phone != nil && *changes.Phone != user.Phone {
		set["phone"] = *changes.Phone
	}
	if changes.ProfileImageURL != nil && *changes.ProfileImageURL != user.ProfileImageURL {
		set["profile_image_url"] = *changes.ProfileImageURL
	}
	// A provided password is always a change: the caller hands us a fresh
	// bcrypt hash, which never equals the stored one.
	if changes.Password != nil {
		set["password"] = *changes.Password
	}

	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = time.Now()

	err = r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("email already in use by another user: %w", models.ErrConflict)
		}
		return err
	}
	return nil
}

// Activate marks a user account as active (email verified)
func (r *UserRepository) Activate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %q: %w", id, models.ErrNotFound)
	}
	return nil
}

// SoftDelete marks a live user as deleted and deactivates the account.
// The row is never removed; the freed email may be registered again.
func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"is_active":  false,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %q: %w", id, models.ErrNotFound)
	}
	return nil
}

// List retrieves live users matching the filter, paginated. Name and email
// are substring matches, role is an exact match; absent filters are omitted
// from the query entirely.
func (r *UserRepository) List(ctx context.Context, filter dto.UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Order("created_at DESC, id").
		Limit(filter.Limit).Offset(filter.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, totalCount, nil
}
