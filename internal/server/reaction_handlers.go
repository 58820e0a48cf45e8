// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tribuna/internal/models"
	"tribuna/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReactions handles GET /api/reactions?target_type=&target_id=
func (s *Server) GetReactions(c *fiber.Ctx) error {
	ctx := c.Context()

	targetType := c.Query("target_type")
	targetID := c.QueryInt("target_id", 0)
	if targetType == "" || targetID <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_type and target_id are required"))
	}

	reactions, err := s.reactionService.ListReactions(ctx, targetType, uint(targetID))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(reactions)
}

// CreateReaction handles POST /api/reactions
// @Summary React to a post or comment
// @Tags reactions
// @Accept json
// @Produce json
// @Success 201 {object} models.Reaction
// @Failure 409 {object} models.ErrorResponse
// @Router /reactions [post]
func (s *Server) CreateReaction(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		TargetType string `json:"target_type"`
		TargetID   uint   `json:"target_id"`
		Type       string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reaction, err := s.reactionService.React(ctx, service.ReactInput{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Type:       req.Type,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if reaction.TargetType == models.TargetTypePost {
		s.publishBroadcastEvent(EventReactionUpdated, map[string]interface{}{
			"target_type": reaction.TargetType,
			"target_id":   reaction.TargetID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reaction)
}

// DeleteReaction handles DELETE /api/reactions/:id
func (s *Server) DeleteReaction(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	reactionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reactionService.UnreactByID(ctx, userID, reactionID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reaction removed",
	})
}
