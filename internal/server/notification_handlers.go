// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"tribuna/internal/models"
	"tribuna/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	notifs, err := s.notifService.ListNotifications(ctx, service.ListNotificationsInput{
		UserID:     userID,
		UnreadOnly: c.QueryBool("unread", false),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(notifs)
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	count, err := s.notifService.CountUnread(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"unread": count,
	})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notifService.MarkRead(ctx, userID, notificationID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead handles PUT /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	if err := s.notifService.MarkAllRead(ctx, userID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}

// DeleteNotification handles DELETE /api/notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notifService.DeleteNotification(ctx, userID, notificationID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Notification deleted",
	})
}
