package service

import (
	"context"

	"tribuna/internal/cache"
	"tribuna/internal/models"
	"tribuna/internal/repository"
)

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

type ListNotificationsInput struct {
	UserID     uint
	UnreadOnly bool
	Limit      int
	Offset     int
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListNotifications(ctx context.Context, in ListNotificationsInput) ([]*models.Notification, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	return s.notificationRepo.ListByRecipient(ctx, in.UserID, in.UnreadOnly, in.Limit, in.Offset)
}

// CountUnread serves the badge counter.  It is cached briefly; every write
// path through the notification repository invalidates the key.
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := cache.Aside(ctx, cache.UnreadCountKey(userID), &n, cache.UnreadCountTTL, func() error {
		var err error
		n, err = s.notificationRepo.CountUnread(ctx, userID)
		return err
	})
	return n, err
}

// MarkRead marks one of the user's own notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.RecipientID != userID {
		return models.NewForbiddenError("You can only update your own notifications")
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.RecipientID != userID {
		return models.NewForbiddenError("You can only delete your own notifications")
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}
