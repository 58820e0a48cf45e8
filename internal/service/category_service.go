package service

import (
	"context"
	"strings"
	"unicode"

	"tribuna/internal/models"
	"tribuna/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
	Color       string
	Icon        string
}

type UpdateCategoryInput struct {
	CategoryID  uint
	Name        string
	Description string
	Color       string
	Icon        string
	IsActive    *bool
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Slugify lowercases the name, folds accented vowels and keeps only
// letters, digits and hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case 'á':
			r = 'a'
		case 'é':
			r = 'e'
		case 'í':
			r = 'i'
		case 'ó':
			r = 'o'
		case 'ú', 'ü':
			r = 'u'
		case 'ñ':
			r = 'n'
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		return nil, models.NewValidationError("Name must contain at least one letter or digit")
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, slug)
}

func (s *CategoryService) ListCategories(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	// The slug is stable after creation; renames do not move URLs.
	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}
	if in.Color != "" {
		category.Color = in.Color
	}
	if in.Icon != "" {
		category.Icon = in.Icon
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

// ReconcilePostsCount recounts a category's published posts and stores the
// result.  Like the engagement counters this overwrites, never increments.
func (s *CategoryService) ReconcilePostsCount(ctx context.Context, categoryID uint) error {
	n, err := s.categoryRepo.CountPosts(ctx, categoryID)
	if err != nil {
		return err
	}
	return s.categoryRepo.SetPostsCount(ctx, categoryID, int(n))
}
