package engagement

import (
	"context"
	"fmt"
	"log/slog"

	"tribuna/internal/middleware"
	"tribuna/internal/models"
	"tribuna/internal/repository"
)

// Publisher fans a freshly created notification out to live consumers.
// Publish failures are logged and never undo the stored row.
type Publisher interface {
	PublishNotification(ctx context.Context, notification *models.Notification) error
}

// Dispatcher turns engagement events into notification rows.  Every event
// produces zero or one notification.  The message text is rendered here,
// once, with the sender's name at dispatch time.
type Dispatcher struct {
	notifications repository.NotificationRepository
	publisher     Publisher
	logger        *slog.Logger
}

// NewDispatcher creates a Dispatcher.  publisher may be nil when no live
// delivery channel is configured.
func NewDispatcher(notifications repository.NotificationRepository, publisher Publisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{notifications: notifications, publisher: publisher, logger: logger}
}

// ReactionCreated notifies the target's owner about a new reaction.
func (d *Dispatcher) ReactionCreated(ctx context.Context, sender *models.User, target *Target) error {
	if target.Ref.Type == models.TargetTypeComment {
		return d.dispatch(ctx, &models.Notification{
			Type:             models.NotificationLikeOnComment,
			RecipientID:      target.OwnerID,
			SenderID:         &sender.ID,
			Message:          fmt.Sprintf("%s reacted to your comment", sender.FullName),
			RelatedPostID:    &target.PostID,
			RelatedCommentID: target.CommentID,
			ActionURL:        fmt.Sprintf("/posts/%d#comment-%d", target.PostID, *target.CommentID),
		}, sender.ID)
	}

	return d.dispatch(ctx, &models.Notification{
		Type:          models.NotificationLikeOnPost,
		RecipientID:   target.OwnerID,
		SenderID:      &sender.ID,
		Message:       fmt.Sprintf("%s reacted to your post %q", sender.FullName, target.PostTitle),
		RelatedPostID: &target.PostID,
		ActionURL:     fmt.Sprintf("/posts/%d", target.PostID),
	}, sender.ID)
}

// CommentCreated notifies the post's author about a new top-level comment.
func (d *Dispatcher) CommentCreated(ctx context.Context, sender *models.User, post *models.Post, comment *models.Comment) error {
	return d.dispatch(ctx, &models.Notification{
		Type:             models.NotificationNewCommentOnPost,
		RecipientID:      post.AuthorID,
		SenderID:         &sender.ID,
		Message:          fmt.Sprintf("%s commented on your post %q", sender.FullName, post.Title),
		RelatedPostID:    &post.ID,
		RelatedCommentID: &comment.ID,
		ActionURL:        fmt.Sprintf("/posts/%d#comment-%d", post.ID, comment.ID),
	}, sender.ID)
}

// ReplyCreated notifies the parent comment's author about a reply.
func (d *Dispatcher) ReplyCreated(ctx context.Context, sender *models.User, parent *models.Comment, reply *models.Comment) error {
	return d.dispatch(ctx, &models.Notification{
		Type:             models.NotificationReplyToComment,
		RecipientID:      parent.AuthorID,
		SenderID:         &sender.ID,
		Message:          fmt.Sprintf("%s replied to your comment", sender.FullName),
		RelatedPostID:    &reply.PostID,
		RelatedCommentID: &reply.ID,
		ActionURL:        fmt.Sprintf("/posts/%d#comment-%d", reply.PostID, reply.ID),
	}, sender.ID)
}

// dispatch stores the notification unless the sender would be notifying
// themselves.  Live fan-out runs after the row exists and cannot fail it.
func (d *Dispatcher) dispatch(ctx context.Context, notification *models.Notification, senderID uint) error {
	if notification.RecipientID == senderID {
		middleware.NotificationsSuppressed.Inc()
		return nil
	}

	if err := d.notifications.Create(ctx, notification); err != nil {
		middleware.NotificationsDispatched.WithLabelValues(string(notification.Type), "error").Inc()
		return err
	}
	middleware.NotificationsDispatched.WithLabelValues(string(notification.Type), "ok").Inc()

	if d.publisher != nil {
		if err := d.publisher.PublishNotification(ctx, notification); err != nil {
			d.logger.WarnContext(ctx, "notification publish failed",
				"notification_id", notification.ID,
				"recipient_id", notification.RecipientID,
				"error", err)
		}
	}
	return nil
}
