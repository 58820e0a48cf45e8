// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tribuna/internal/models"
	"tribuna/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me (and GET /api/auth/me)
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		FullName        string `json:"full_name"`
		Bio             string `json:"bio"`
		ProfileImageURL string `json:"profile_image_url"`
		Candidate       *struct {
			Faculty    string              `json:"faculty"`
			Position   string              `json:"position"`
			Proposal   string              `json:"proposal"`
			Experience []models.Experience `json:"experience"`
			Social     *models.SocialLinks `json:"social"`
		} `json:"candidate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateProfileInput{
		UserID:          userID,
		FullName:        req.FullName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
	}
	if req.Candidate != nil {
		in.Candidate = &service.UpdateCandidateProfileInput{
			Faculty:     req.Candidate.Faculty,
			Position:    req.Candidate.Position,
			Proposal:    req.Candidate.Proposal,
			Experience:  req.Candidate.Experience,
			SocialLinks: req.Candidate.Social,
		}
	}

	user, err := s.userService.UpdateProfile(ctx, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(ctx, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// GetCandidates handles GET /api/candidates
// @Summary Candidate directory
// @Description List candidates, optionally filtered by faculty and position
// @Tags users
// @Produce json
// @Param faculty query string false "Faculty filter"
// @Param position query string false "Position filter"
// @Success 200 {array} models.User
// @Router /candidates [get]
func (s *Server) GetCandidates(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	candidates, err := s.userService.ListCandidates(ctx, service.ListCandidatesInput{
		Faculty:  c.Query("faculty"),
		Position: c.Query("position"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(candidates)
}
