// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"tribuna/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, publicOnly bool) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	CountReplies(ctx context.Context, parentCommentID uint) (int64, error)
	SetLikesCount(ctx context.Context, id uint, n int) error
	SetRepliesCount(ctx context.Context, id uint, n int) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment", id)
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, publicOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := r.db.WithContext(ctx).Preload("Author").Where("post_id = ?", postID)
	if publicOnly {
		q = q.Where("status = ?", models.CommentStatusPublic)
	}
	err := q.Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

// CountByPost counts live comments on a post.  Soft-deleted rows are excluded,
// which is what keeps the recomputed comments_count honest.
func (r *commentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}

func (r *commentRepository) CountReplies(ctx context.Context, parentCommentID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_comment_id = ?", parentCommentID).
		Count(&n).Error
	return n, err
}

func (r *commentRepository) SetLikesCount(ctx context.Context, id uint, n int) error {
	return r.setCounter(ctx, id, "likes_count", n)
}

func (r *commentRepository) SetRepliesCount(ctx context.Context, id uint, n int) error {
	return r.setCounter(ctx, id, "replies_count", n)
}

func (r *commentRepository) setCounter(ctx context.Context, id uint, column string, n int) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn(column, n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
