// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"tribuna/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines interface for reaction operations
type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	GetByID(ctx context.Context, id uint) (*models.Reaction, error)
	GetByUserAndTarget(ctx context.Context, userID uint, targetType models.TargetType, targetID uint) (*models.Reaction, error)
	ListByTarget(ctx context.Context, targetType models.TargetType, targetID uint) ([]*models.Reaction, error)
	CountByTarget(ctx context.Context, targetType models.TargetType, targetID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Create persists a reaction.  The (user_id, target_type, target_id) unique
// index is enforced by the store; a duplicate surfaces as a ConflictError and
// is never retried here.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).Create(reaction).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError("You have already reacted to this content")
	}
	return err
}

func (r *reactionRepository) GetByID(ctx context.Context, id uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).First(&reaction, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Reaction", id)
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) GetByUserAndTarget(ctx context.Context, userID uint, targetType models.TargetType, targetID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByTarget(ctx context.Context, targetType models.TargetType, targetID uint) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at desc").
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) CountByTarget(ctx context.Context, targetType models.TargetType, targetID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&n).Error
	return n, err
}

func (r *reactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reaction{}, id).Error
}
