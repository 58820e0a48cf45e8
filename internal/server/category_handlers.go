// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tribuna/internal/models"
	"tribuna/internal/service"
	"tribuna/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	ctx := c.Context()
	activeOnly := c.QueryBool("active", true)

	categories, err := s.categoryService.ListCategories(ctx, activeOnly)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(categories)
}

// GetCategoryBySlug handles GET /api/categories/:slug
func (s *Server) GetCategoryBySlug(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("slug")

	category, err := s.categoryService.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(category)
}

// CreateCategory handles POST /api/categories. Only candidates may manage
// the taxonomy.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	if err := s.requireCandidate(c, userID); err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Slug != "" {
		if err := validation.ValidateCategorySlug(req.Slug); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	category, err := s.categoryService.CreateCategory(ctx, service.CreateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.requireCandidate(c, userID); err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
		IsActive    *bool  `json:"is_active"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(ctx, service.UpdateCategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(category)
}

// requireCandidate writes a 403 and returns errResponseWritten unless the
// acting user is a candidate.
func (s *Server) requireCandidate(c *fiber.Ctx, userID uint) error {
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		_ = models.RespondWithAppError(c, err)
		return errResponseWritten
	}
	if !user.IsCandidate() {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only candidates can manage categories"))
		return errResponseWritten
	}
	return nil
}
