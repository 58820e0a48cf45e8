// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"tribuna/internal/cache"
	"tribuna/internal/models"

	"gorm.io/gorm"
)

// PostFilters narrows post listings.
type PostFilters struct {
	Status       models.PostStatus
	Type         models.PostType
	AuthorID     uint
	CategorySlug string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filters PostFilters, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	SetLikesCount(ctx context.Context, id uint, n int) error
	SetCommentsCount(ctx context.Context, id uint, n int) error
	ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Categories").
			First(&post, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filters PostFilters, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories")

	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.AuthorID != 0 {
		q = q.Where("author_id = ?", filters.AuthorID)
	}
	if filters.CategorySlug != "" {
		q = q.Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Joins("JOIN categories c ON c.id = pc.category_id").
			Where("c.slug = ?", filters.CategorySlug)
	}

	// Pinned posts first, then newest.
	err := q.Order("is_pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Save(post).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID)
	}
	return err
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(id))
	}
	return err
}

// SetLikesCount writes a recomputed reaction count.  UpdateColumn is used so
// counter writes do not touch updated_at or fire model hooks.
func (r *postRepository) SetLikesCount(ctx context.Context, id uint, n int) error {
	return r.setCounter(ctx, id, "likes_count", n)
}

func (r *postRepository) SetCommentsCount(ctx context.Context, id uint, n int) error {
	return r.setCounter(ctx, id, "comments_count", n)
}

func (r *postRepository) setCounter(ctx context.Context, id uint, column string, n int) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	err := r.db.WithContext(ctx).Model(post).Association("Categories").Replace(categories)
	if err == nil {
		cache.InvalidatePost(ctx, post.ID)
	}
	return err
}
