// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"tribuna/internal/cache"
	"tribuna/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListCandidates(ctx context.Context, faculty, position string, limit, offset int) ([]*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError("A user with this email already exists")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("User", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user matches, so callers can
// distinguish "not registered" from a storage failure.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if err == nil {
		cache.InvalidateUser(ctx, user.ID)
	}
	return err
}

func (r *userRepository) ListCandidates(ctx context.Context, faculty, position string, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	q := r.db.WithContext(ctx).
		Where("user_type = ? AND is_active = ?", models.UserTypeCandidate, true)
	if faculty != "" {
		q = q.Where("candidate_faculty = ?", faculty)
	}
	if position != "" {
		q = q.Where("candidate_position = ?", position)
	}
	err := q.Order("full_name asc").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}
