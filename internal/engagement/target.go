// Package engagement keeps denormalized counters consistent and dispatches
// notifications after reactions and comments change.  It is invoked by the
// service layer after a primary write succeeds; nothing in this package can
// fail a caller's request.
package engagement

import (
	"context"
	"fmt"

	"tribuna/internal/models"
	"tribuna/internal/repository"
)

// TargetRef is a weak polymorphic pointer to a post or a comment, as stored
// on a reaction row.
type TargetRef struct {
	Type models.TargetType
	ID   uint
}

// Target is a resolved TargetRef: the live document behind the pointer plus
// the fields every downstream step needs.  PostID is always the post the
// target ultimately lives on, so reply and comment-reaction links can point
// into the right thread.
type Target struct {
	Ref       TargetRef
	OwnerID   uint
	PostID    uint
	PostTitle string
	CommentID *uint
}

// Resolver dereferences (TargetType, TargetID) pairs.  It is the only place
// in the codebase allowed to interpret the pair.
type Resolver struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewResolver creates a Resolver over the given repositories.
func NewResolver(posts repository.PostRepository, comments repository.CommentRepository) *Resolver {
	return &Resolver{posts: posts, comments: comments}
}

// Resolve loads the document a ref points at.  A ref whose document has been
// deleted resolves to a not-found error; callers treat that as a skipped side
// effect, never as a failure of the triggering write.
func (r *Resolver) Resolve(ctx context.Context, ref TargetRef) (*Target, error) {
	switch ref.Type {
	case models.TargetTypePost:
		post, err := r.posts.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &Target{
			Ref:       ref,
			OwnerID:   post.AuthorID,
			PostID:    post.ID,
			PostTitle: post.Title,
		}, nil
	case models.TargetTypeComment:
		comment, err := r.comments.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		id := comment.ID
		return &Target{
			Ref:       ref,
			OwnerID:   comment.AuthorID,
			PostID:    comment.PostID,
			CommentID: &id,
		}, nil
	default:
		return nil, fmt.Errorf("unknown target type %q", ref.Type)
	}
}
