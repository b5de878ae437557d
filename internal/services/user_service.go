package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/models"
	apperrors "github.com/mquintal/aitutor/pkg/errors"
)

// CreateUserInput describes the fields accepted when creating a user. The
// password hash arrives pre-computed; hashing is the caller's business.
type CreateUserInput struct {
	Username     string
	PasswordHash string
	Email        *string
	IsAdmin      bool
}

// UserService manages user accounts and their subscription attributes.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// Create provisions a new user. Username and email collisions surface as
// ErrDuplicateKey so callers can tell the user the name is taken.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperrors.NewBadRequest("username is required")
	}
	if input.PasswordHash == "" {
		return nil, apperrors.NewBadRequest("password hash is required")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: input.PasswordHash,
		Email:        normaliseEmail(input.Email),
		IsAdmin:      input.IsAdmin,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateKey.WithInternal(err)
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return user, nil
}

// GetByUsername returns the user with the given username, or nil when no
// such user exists.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("user service: find by username: %w", err)
	}
	return &user, nil
}

// GetByID returns the user with the given id, or nil when no such user exists.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("user service: find by id: %w", err)
	}
	return &user, nil
}

// IsAdmin reports whether the user holds administrator rights. Unknown users
// and storage faults both read as false.
func (s *UserService) IsAdmin(ctx context.Context, id uint) bool {
	user, err := s.GetByID(ctx, id)
	if err != nil || user == nil {
		return false
	}
	return user.IsAdmin
}

// List returns every user ordered newest-created first. The password hash is
// excluded from the projection.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	ctx = ensureContext(ctx)

	var users []models.User
	err := s.db.WithContext(ctx).
		Select("id", "username", "email", "created_at", "subscription_active", "subscription_expires", "is_admin").
		Order("created_at DESC, id DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}
	return users, nil
}

// UpdateSubscription overwrites both subscription fields atomically. Updating
// a non-existent id affects zero rows and reports success; only storage
// faults produce an error.
func (s *UserService) UpdateSubscription(ctx context.Context, id uint, active bool, expires *time.Time) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"subscription_active":  active,
			"subscription_expires": expires,
		}).Error
	if err != nil {
		return fmt.Errorf("user service: update subscription: %w", err)
	}
	return nil
}
