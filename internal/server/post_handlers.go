// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"tribuna/internal/models"
	"tribuna/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Create a campaign post (candidates only)
// @Tags posts
// @Accept json
// @Produce json
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title            string               `json:"title"`
		Content          string               `json:"content"`
		Excerpt          string               `json:"excerpt"`
		Type             string               `json:"type"`
		Status           string               `json:"status"`
		FeaturedImageURL string               `json:"featured_image_url"`
		Gallery          []models.GalleryItem `json:"gallery"`
		CategoryIDs      []uint               `json:"category_ids"`
		Tags             []string             `json:"tags"`
		AllowComments    *bool                `json:"allow_comments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:           userID,
		Title:            req.Title,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		Type:             req.Type,
		Status:           req.Status,
		FeaturedImageURL: req.FeaturedImageURL,
		Gallery:          req.Gallery,
		CategoryIDs:      req.CategoryIDs,
		Tags:             req.Tags,
		AllowComments:    req.AllowComments,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	s.publishBroadcastEvent(EventPostCreated, map[string]interface{}{
		"post_id":    post.ID,
		"author_id":  post.AuthorID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		AuthorID:     uint(c.QueryInt("author_id", 0)),
		CategorySlug: c.Query("category"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// RecordPostView handles POST /api/posts/:id/view
func (s *Server) RecordPostView(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.RecordView(ctx, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title            string               `json:"title"`
		Content          string               `json:"content"`
		Excerpt          string               `json:"excerpt"`
		Status           string               `json:"status"`
		FeaturedImageURL string               `json:"featured_image_url"`
		Gallery          []models.GalleryItem `json:"gallery"`
		CategoryIDs      *[]uint              `json:"category_ids"`
		Tags             *[]string            `json:"tags"`
		AllowComments    *bool                `json:"allow_comments"`
		IsPinned         *bool                `json:"is_pinned"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:           userID,
		PostID:           postID,
		Title:            req.Title,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		Status:           req.Status,
		FeaturedImageURL: req.FeaturedImageURL,
		Gallery:          req.Gallery,
		CategoryIDs:      req.CategoryIDs,
		Tags:             req.Tags,
		AllowComments:    req.AllowComments,
		IsPinned:         req.IsPinned,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, userID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}
