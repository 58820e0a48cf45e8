package engagement

import (
	"context"

	"tribuna/internal/middleware"
	"tribuna/internal/models"
	"tribuna/internal/repository"
)

// Reconciler recomputes denormalized counters from live rows.  Counters are
// always overwritten with a fresh COUNT, never incremented or decremented,
// so a missed or double-fired event can only leave a counter stale until the
// next write, not permanently wrong.
type Reconciler struct {
	posts     repository.PostRepository
	comments  repository.CommentRepository
	reactions repository.ReactionRepository
}

// NewReconciler creates a Reconciler over the given repositories.
func NewReconciler(posts repository.PostRepository, comments repository.CommentRepository, reactions repository.ReactionRepository) *Reconciler {
	return &Reconciler{posts: posts, comments: comments, reactions: reactions}
}

// ReconcileReactions recounts reactions on the target and writes the result
// to the matching likes_count column.
func (r *Reconciler) ReconcileReactions(ctx context.Context, target *Target) error {
	n, err := r.reactions.CountByTarget(ctx, target.Ref.Type, target.Ref.ID)
	if err != nil {
		return r.outcome("reaction_"+string(target.Ref.Type), err)
	}

	switch target.Ref.Type {
	case models.TargetTypePost:
		err = r.posts.SetLikesCount(ctx, target.Ref.ID, int(n))
	case models.TargetTypeComment:
		err = r.comments.SetLikesCount(ctx, target.Ref.ID, int(n))
	}
	return r.outcome("reaction_"+string(target.Ref.Type), err)
}

// ReconcileComments recounts live comments on a post, replies included, and
// writes comments_count.
func (r *Reconciler) ReconcileComments(ctx context.Context, postID uint) error {
	n, err := r.comments.CountByPost(ctx, postID)
	if err != nil {
		return r.outcome("post_comments", err)
	}
	return r.outcome("post_comments", r.posts.SetCommentsCount(ctx, postID, int(n)))
}

// ReconcileReplies recounts live replies under a parent comment and writes
// replies_count.
func (r *Reconciler) ReconcileReplies(ctx context.Context, parentCommentID uint) error {
	n, err := r.comments.CountReplies(ctx, parentCommentID)
	if err != nil {
		return r.outcome("comment_replies", err)
	}
	return r.outcome("comment_replies", r.comments.SetRepliesCount(ctx, parentCommentID, int(n)))
}

func (r *Reconciler) outcome(kind string, err error) error {
	if err != nil {
		middleware.EngagementReconciliations.WithLabelValues(kind, "error").Inc()
		return err
	}
	middleware.EngagementReconciliations.WithLabelValues(kind, "ok").Inc()
	return nil
}
