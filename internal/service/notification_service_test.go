package service

import (
	"context"
	"testing"

	"tribuna/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	getByIDFn         func(context.Context, uint) (*models.Notification, error)
	listByRecipientFn func(context.Context, uint, bool, int, int) ([]*models.Notification, error)
	countUnreadFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint) error
	markAllReadFn     func(context.Context, uint) error
	deleteFn          func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID, unreadOnly, limit, offset)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id uint) error {
	return s.markReadFn(ctx, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Notification, error) {
			return &models.Notification{ID: id, RecipientID: 1}, nil
		},
		listByRecipientFn: func(_ context.Context, _ uint, _ bool, _, _ int) ([]*models.Notification, error) {
			return nil, nil
		},
		countUnreadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _ uint) error { return nil },
		markAllReadFn: func(_ context.Context, _ uint) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

func TestNotificationService_MarkRead_OwnOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("recipient may mark", func(t *testing.T) {
		t.Parallel()
		repo := noopNotificationRepo()
		var marked uint
		repo.markReadFn = func(_ context.Context, id uint) error {
			marked = id
			return nil
		}
		svc := NewNotificationService(repo)

		require.NoError(t, svc.MarkRead(ctx, 1, 5))
		assert.Equal(t, uint(5), marked)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewNotificationService(noopNotificationRepo())
		err := svc.MarkRead(ctx, 99, 5)
		assertForbiddenError(t, err)
	})
}

func TestNotificationService_Delete_OwnOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewNotificationService(noopNotificationRepo())

	require.NoError(t, svc.DeleteNotification(ctx, 1, 5))
	assertForbiddenError(t, svc.DeleteNotification(ctx, 99, 5))
}

func TestNotificationService_ListDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := noopNotificationRepo()
	var gotLimit int
	var gotUnread bool
	repo.listByRecipientFn = func(_ context.Context, _ uint, unreadOnly bool, limit, _ int) ([]*models.Notification, error) {
		gotLimit, gotUnread = limit, unreadOnly
		return nil, nil
	}
	svc := NewNotificationService(repo)

	_, err := svc.ListNotifications(ctx, ListNotificationsInput{UserID: 1, UnreadOnly: true, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.True(t, gotUnread)
}

func TestNotificationService_CountUnread(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := noopNotificationRepo()
	repo.countUnreadFn = func(_ context.Context, _ uint) (int64, error) { return 4, nil }
	svc := NewNotificationService(repo)

	n, err := svc.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
