package service

import (
	"context"
	"testing"

	"tribuna/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn          func(context.Context, *models.Comment) error
	getByIDFn         func(context.Context, uint) (*models.Comment, error)
	listByPostFn      func(context.Context, uint, bool) ([]*models.Comment, error)
	updateFn          func(context.Context, *models.Comment) error
	deleteFn          func(context.Context, uint) error
	countByPostFn     func(context.Context, uint) (int64, error)
	countRepliesFn    func(context.Context, uint) (int64, error)
	setLikesCountFn   func(context.Context, uint, int) error
	setRepliesCountFn func(context.Context, uint, int) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, publicOnly bool) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, publicOnly)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountReplies(ctx context.Context, parentCommentID uint) (int64, error) {
	return s.countRepliesFn(ctx, parentCommentID)
}
func (s *commentRepoStub) SetLikesCount(ctx context.Context, id uint, n int) error {
	return s.setLikesCountFn(ctx, id, n)
}
func (s *commentRepoStub) SetRepliesCount(ctx context.Context, id uint, n int) error {
	return s.setRepliesCountFn(ctx, id, n)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, AuthorID: 1, PostID: 1}, nil
		},
		listByPostFn:      func(_ context.Context, _ uint, _ bool) ([]*models.Comment, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		countByPostFn:     func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countRepliesFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		setLikesCountFn:   func(_ context.Context, _ uint, _ int) error { return nil },
		setRepliesCountFn: func(_ context.Context, _ uint, _ int) error { return nil },
	}
}

// engagementSpy records engine invocations.
type engagementSpy struct {
	reactionCreated []*models.Reaction
	reactionDeleted []*models.Reaction
	commentCreated  []*models.Comment
	commentDeleted  []*models.Comment
}

func (s *engagementSpy) ReactionCreated(_ context.Context, _ *models.User, r *models.Reaction) {
	s.reactionCreated = append(s.reactionCreated, r)
}
func (s *engagementSpy) ReactionDeleted(_ context.Context, r *models.Reaction) {
	s.reactionDeleted = append(s.reactionDeleted, r)
}
func (s *engagementSpy) CommentCreated(_ context.Context, _ *models.User, c *models.Comment) {
	s.commentCreated = append(s.commentCreated, c)
}
func (s *engagementSpy) CommentDeleted(_ context.Context, c *models.Comment) {
	s.commentDeleted = append(s.commentDeleted, c)
}

func publishedPostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 9, Status: models.PostStatusPublished, AllowComments: true}, nil
	}
	return repo
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), publishedPostRepo(), candidateUserRepo(), &engagementSpy{})
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("draft post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.PostStatusDraft, AllowComments: true}, nil
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, candidateUserRepo(), &engagementSpy{})
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: "Hi"})
		assertValidationError(t, err)
	})

	t.Run("comments disabled", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.PostStatusPublished, AllowComments: false}, nil
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, candidateUserRepo(), &engagementSpy{})
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: "Hi"})
		assertForbiddenError(t, err)
	})

	t.Run("parent on another post", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 777}, nil
		}
		svc := NewCommentService(commentRepo, publishedPostRepo(), candidateUserRepo(), &engagementSpy{})
		parent := uint(3)
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, ParentCommentID: &parent, Content: "Hi"})
		assertValidationError(t, err)
	})
}

func TestCommentService_CreateComment_InvokesEngine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	spy := &engagementSpy{}
	svc := NewCommentService(noopCommentRepo(), publishedPostRepo(), candidateUserRepo(), spy)

	_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: "Hi"})
	require.NoError(t, err)
	require.Len(t, spy.commentCreated, 1)
	assert.Equal(t, uint(1), spy.commentCreated[0].PostID)
}

func TestCommentService_UpdateComment_EditStamp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	comment := &models.Comment{ID: 5, AuthorID: 1, PostID: 1, Content: "Old"}
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil }
	var updated *models.Comment
	commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
		updated = c
		return nil
	}
	svc := NewCommentService(commentRepo, publishedPostRepo(), candidateUserRepo(), &engagementSpy{})

	_, err := svc.UpdateComment(ctx, UpdateCommentInput{UserID: 1, CommentID: 5, Content: "New"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsEdited)
	assert.NotNil(t, updated.EditedAt)
	assert.Equal(t, "New", updated.Content)
}

func TestCommentService_UpdateComment_AuthorOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, AuthorID: 42, PostID: 1}, nil
	}
	svc := NewCommentService(commentRepo, publishedPostRepo(), candidateUserRepo(), &engagementSpy{})

	_, err := svc.UpdateComment(ctx, UpdateCommentInput{UserID: 1, CommentID: 5, Content: "New"})
	assertForbiddenError(t, err)

	err = svc.DeleteComment(ctx, 1, 5)
	assertForbiddenError(t, err)
}

func TestCommentService_DeleteComment_InvokesEngine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	spy := &engagementSpy{}
	svc := NewCommentService(noopCommentRepo(), publishedPostRepo(), candidateUserRepo(), spy)

	require.NoError(t, svc.DeleteComment(ctx, 1, 5))
	require.Len(t, spy.commentDeleted, 1)
	assert.Equal(t, uint(5), spy.commentDeleted[0].ID)
}
