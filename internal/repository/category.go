package repository

import (
	"context"
	"errors"

	"tribuna/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines interface for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	CountPosts(ctx context.Context, categoryID uint) (int64, error)
	SetPostsCount(ctx context.Context, categoryID uint, count int) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError("A category with this name or slug already exists")
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Category", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Category", 0)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var categories []*models.Category
	err := q.Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Save(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError("A category with this name or slug already exists")
	}
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Category", id)
	}
	return nil
}

// CountPosts counts published, non deleted posts attached to the category
// through the join table.
func (r *categoryRepository) CountPosts(ctx context.Context, categoryID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.category_id = ? AND posts.status = ?", categoryID, models.PostStatusPublished).
		Count(&n).Error
	return n, err
}

func (r *categoryRepository) SetPostsCount(ctx context.Context, categoryID uint, count int) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", categoryID).
		UpdateColumn("posts_count", count)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Category", categoryID)
	}
	return nil
}
