package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tribuna/internal/models"
	"tribuna/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReactionRepository is a mock of the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) GetByID(ctx context.Context, id uint) (*models.Reaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) GetByUserAndTarget(ctx context.Context, userID uint, targetType models.TargetType, targetID uint) (*models.Reaction, error) {
	args := m.Called(ctx, userID, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) ListByTarget(ctx context.Context, targetType models.TargetType, targetID uint) ([]*models.Reaction, error) {
	args := m.Called(ctx, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) CountByTarget(ctx context.Context, targetType models.TargetType, targetID uint) (int64, error) {
	args := m.Called(ctx, targetType, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReactionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, publicOnly bool) ([]*models.Comment, error) {
	args := m.Called(ctx, postID, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountReplies(ctx context.Context, parentCommentID uint) (int64, error) {
	args := m.Called(ctx, parentCommentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) SetLikesCount(ctx context.Context, id uint, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

func (m *MockCommentRepository) SetRepliesCount(ctx context.Context, id uint, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

// noopEngagement satisfies service.Engagement for handler tests where the
// reconciliation side effects are out of scope.
type noopEngagement struct{}

func (noopEngagement) ReactionCreated(context.Context, *models.User, *models.Reaction) {}
func (noopEngagement) ReactionDeleted(context.Context, *models.Reaction)               {}
func (noopEngagement) CommentCreated(context.Context, *models.User, *models.Comment)   {}
func (noopEngagement) CommentDeleted(context.Context, *models.Comment)                 {}

func newReactionTestServer(
	reactions *MockReactionRepository,
	posts *MockPostRepository,
	comments *MockCommentRepository,
	users *MockUserRepository,
) *Server {
	return &Server{
		reactionService: service.NewReactionService(reactions, posts, comments, users, noopEngagement{}),
	}
}

func TestCreateReaction(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func(r *MockReactionRepository, p *MockPostRepository, u *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"target_type": "post",
				"target_id":   5,
				"type":        "like",
			},
			mockSetup: func(r *MockReactionRepository, p *MockPostRepository, u *MockUserRepository) {
				p.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, AuthorID: 2}, nil)
				u.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
				r.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate reaction",
			body: map[string]interface{}{
				"target_type": "post",
				"target_id":   5,
			},
			mockSetup: func(r *MockReactionRepository, p *MockPostRepository, u *MockUserRepository) {
				p.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5}, nil)
				u.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
				r.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("You have already reacted to this content"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Unknown target type",
			body: map[string]interface{}{
				"target_type": "page",
				"target_id":   5,
			},
			mockSetup:      func(r *MockReactionRepository, p *MockPostRepository, u *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Target not found",
			body: map[string]interface{}{
				"target_type": "post",
				"target_id":   99,
			},
			mockSetup: func(r *MockReactionRepository, p *MockPostRepository, u *MockUserRepository) {
				p.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("Post", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reactions := new(MockReactionRepository)
			posts := new(MockPostRepository)
			comments := new(MockCommentRepository)
			users := new(MockUserRepository)
			tt.mockSetup(reactions, posts, users)

			s := newReactionTestServer(reactions, posts, comments, users)
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals("userID", uint(1))
				return c.Next()
			})
			app.Post("/reactions", s.CreateReaction)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/reactions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			reactions.AssertExpectations(t)
		})
	}
}

func TestGetReactions(t *testing.T) {
	reactions := new(MockReactionRepository)
	posts := new(MockPostRepository)
	posts.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5}, nil)
	reactions.On("ListByTarget", mock.Anything, models.TargetTypePost, uint(5)).
		Return([]*models.Reaction{
			{ID: 1, UserID: 2, TargetType: models.TargetTypePost, TargetID: 5, Type: models.ReactionLike},
		}, nil)

	s := newReactionTestServer(reactions, posts, new(MockCommentRepository), new(MockUserRepository))
	app := fiber.New()
	app.Get("/reactions", s.GetReactions)

	req := httptest.NewRequest(http.MethodGet, "/reactions?target_type=post&target_id=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Reaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestGetReactions_MissingQuery(t *testing.T) {
	s := newReactionTestServer(new(MockReactionRepository), new(MockPostRepository),
		new(MockCommentRepository), new(MockUserRepository))
	app := fiber.New()
	app.Get("/reactions", s.GetReactions)

	req := httptest.NewRequest(http.MethodGet, "/reactions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteReaction(t *testing.T) {
	t.Run("owner can remove", func(t *testing.T) {
		reactions := new(MockReactionRepository)
		reactions.On("GetByID", mock.Anything, uint(4)).Return(&models.Reaction{
			ID:     4,
			UserID: 1,
		}, nil)
		reactions.On("Delete", mock.Anything, uint(4)).Return(nil)

		s := newReactionTestServer(reactions, new(MockPostRepository),
			new(MockCommentRepository), new(MockUserRepository))
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(1))
			return c.Next()
		})
		app.Delete("/reactions/:id", s.DeleteReaction)

		req := httptest.NewRequest(http.MethodDelete, "/reactions/4", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		reactions.AssertExpectations(t)
	})

	t.Run("cannot remove someone else's", func(t *testing.T) {
		reactions := new(MockReactionRepository)
		reactions.On("GetByID", mock.Anything, uint(4)).Return(&models.Reaction{
			ID:     4,
			UserID: 2,
		}, nil)

		s := newReactionTestServer(reactions, new(MockPostRepository),
			new(MockCommentRepository), new(MockUserRepository))
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", uint(1))
			return c.Next()
		})
		app.Delete("/reactions/:id", s.DeleteReaction)

		req := httptest.NewRequest(http.MethodDelete, "/reactions/4", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
