package service

import (
	"context"

	"tribuna/internal/models"
)

// Engagement is the slice of the engagement engine the services invoke after
// a primary write succeeds.  Implementations must never return errors to the
// caller; side effects are fire-and-forget.
type Engagement interface {
	ReactionCreated(ctx context.Context, actor *models.User, reaction *models.Reaction)
	ReactionDeleted(ctx context.Context, reaction *models.Reaction)
	CommentCreated(ctx context.Context, actor *models.User, comment *models.Comment)
	CommentDeleted(ctx context.Context, comment *models.Comment)
}
