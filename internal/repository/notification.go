package repository

import (
	"context"
	"errors"
	"time"

	"tribuna/internal/cache"
	"tribuna/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
	Delete(ctx context.Context, id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).Preload("Sender").First(&notification, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Notification", id)
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	q := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []*models.Notification
	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&n).Error
	return n, err
}

// MarkRead stamps read_at exactly once.  A second call on an already read
// notification leaves the original timestamp intact.
func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	var notification models.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Notification", id)
	}
	if err != nil {
		return err
	}
	if notification.Read {
		return nil
	}
	now := time.Now()
	err = r.db.WithContext(ctx).Model(&notification).
		UpdateColumns(map[string]interface{}{"read": true, "read_at": now}).Error
	if err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		UpdateColumns(map[string]interface{}{"read": true, "read_at": now}).Error
	if err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, recipientID)
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	var notification models.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Notification", id)
	}
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&notification).Error; err != nil {
		return err
	}
	cache.InvalidateUnreadCount(ctx, notification.RecipientID)
	return nil
}
