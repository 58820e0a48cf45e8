package engagement

import (
	"context"
	"log/slog"

	"tribuna/internal/middleware"
	"tribuna/internal/models"
	"tribuna/internal/repository"
)

// Engine is the entry point the service layer calls after a reaction or
// comment write succeeds.  Every method runs the reconciler first, then the
// dispatcher, and swallows every error after logging it: side effects never
// fail or roll back the write that triggered them.
type Engine struct {
	resolver   *Resolver
	reconciler *Reconciler
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewEngine wires the resolver, reconciler and dispatcher over the given
// repositories.  publisher may be nil.
func NewEngine(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	reactions repository.ReactionRepository,
	notifications repository.NotificationRepository,
	publisher Publisher,
) *Engine {
	logger := middleware.Logger.With("component", "engagement")
	return &Engine{
		resolver:   NewResolver(posts, comments),
		reconciler: NewReconciler(posts, comments, reactions),
		dispatcher: NewDispatcher(notifications, publisher, logger),
		logger:     logger,
	}
}

// ReactionCreated reconciles the target's likes count and notifies its owner.
func (e *Engine) ReactionCreated(ctx context.Context, actor *models.User, reaction *models.Reaction) {
	ref := TargetRef{Type: reaction.TargetType, ID: reaction.TargetID}
	target, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		e.swallow(ctx, "resolve reaction target", ref, err)
		return
	}

	if err := e.reconciler.ReconcileReactions(ctx, target); err != nil {
		e.swallow(ctx, "reconcile reactions", ref, err)
	}
	if err := e.dispatcher.ReactionCreated(ctx, actor, target); err != nil {
		e.swallow(ctx, "dispatch reaction notification", ref, err)
	}
}

// ReactionDeleted reconciles the target's likes count.  Notifications are
// never retracted.
func (e *Engine) ReactionDeleted(ctx context.Context, reaction *models.Reaction) {
	ref := TargetRef{Type: reaction.TargetType, ID: reaction.TargetID}
	target, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		e.swallow(ctx, "resolve reaction target", ref, err)
		return
	}
	if err := e.reconciler.ReconcileReactions(ctx, target); err != nil {
		e.swallow(ctx, "reconcile reactions", ref, err)
	}
}

// CommentCreated reconciles the post's comment count, and for replies the
// parent's reply count, then notifies the post author or the parent comment
// author.
func (e *Engine) CommentCreated(ctx context.Context, actor *models.User, comment *models.Comment) {
	ref := TargetRef{Type: models.TargetTypePost, ID: comment.PostID}
	target, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		e.swallow(ctx, "resolve comment post", ref, err)
		return
	}

	if err := e.reconciler.ReconcileComments(ctx, comment.PostID); err != nil {
		e.swallow(ctx, "reconcile comments", ref, err)
	}

	if comment.ParentCommentID == nil {
		post := &models.Post{ID: target.PostID, Title: target.PostTitle, AuthorID: target.OwnerID}
		if err := e.dispatcher.CommentCreated(ctx, actor, post, comment); err != nil {
			e.swallow(ctx, "dispatch comment notification", ref, err)
		}
		return
	}

	if err := e.reconciler.ReconcileReplies(ctx, *comment.ParentCommentID); err != nil {
		e.swallow(ctx, "reconcile replies", ref, err)
	}

	parentRef := TargetRef{Type: models.TargetTypeComment, ID: *comment.ParentCommentID}
	parentTarget, err := e.resolver.Resolve(ctx, parentRef)
	if err != nil {
		e.swallow(ctx, "resolve parent comment", parentRef, err)
		return
	}
	parent := &models.Comment{ID: parentRef.ID, AuthorID: parentTarget.OwnerID, PostID: parentTarget.PostID}
	if err := e.dispatcher.ReplyCreated(ctx, actor, parent, comment); err != nil {
		e.swallow(ctx, "dispatch reply notification", parentRef, err)
	}
}

// CommentDeleted reconciles the post's comment count and, for replies, the
// parent's reply count.  No notifications.
func (e *Engine) CommentDeleted(ctx context.Context, comment *models.Comment) {
	ref := TargetRef{Type: models.TargetTypePost, ID: comment.PostID}
	if err := e.reconciler.ReconcileComments(ctx, comment.PostID); err != nil {
		e.swallow(ctx, "reconcile comments", ref, err)
	}
	if comment.ParentCommentID != nil {
		if err := e.reconciler.ReconcileReplies(ctx, *comment.ParentCommentID); err != nil {
			e.swallow(ctx, "reconcile replies", ref, err)
		}
	}
}

// swallow logs a side effect failure and drops it.  A vanished target is
// routine (the document was deleted between event and resolution) and logs
// at a lower level than a storage failure.
func (e *Engine) swallow(ctx context.Context, step string, ref TargetRef, err error) {
	level := slog.LevelError
	if appErr, ok := models.AsAppError(err); ok && appErr.Code == models.CodeNotFound {
		level = slog.LevelInfo
	}
	e.logger.Log(ctx, level, "engagement side effect skipped",
		"step", step,
		"target_type", ref.Type,
		"target_id", ref.ID,
		"error", err)
}
