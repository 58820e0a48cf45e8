package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tribuna/internal/models"
	"tribuna/internal/repository"
	"tribuna/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filters repository.PostFilters, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) SetLikesCount(ctx context.Context, id uint, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

func (m *MockPostRepository) SetCommentsCount(ctx context.Context, id uint, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

func (m *MockPostRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	args := m.Called(ctx, post, categories)
	return args.Error(0)
}

// MockCategoryRepository is a mock of the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountPosts(ctx context.Context, categoryID uint) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) SetPostsCount(ctx context.Context, categoryID uint, count int) error {
	args := m.Called(ctx, categoryID, count)
	return args.Error(0)
}

func newPostTestServer(postRepo *MockPostRepository, userRepo *MockUserRepository) *Server {
	catRepo := new(MockCategoryRepository)
	return &Server{
		postRepo:    postRepo,
		userRepo:    userRepo,
		postService: service.NewPostService(postRepo, userRepo, catRepo),
	}
}

func TestCreatePost(t *testing.T) {
	candidate := &models.User{ID: 1, UserType: models.UserTypeCandidate}
	voter := &models.User{ID: 2, UserType: models.UserTypeVoter}

	tests := []struct {
		name           string
		userID         uint
		body           map[string]interface{}
		mockSetup      func(posts *MockPostRepository, users *MockUserRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			userID: 1,
			body: map[string]interface{}{
				"title":   "Campaign kickoff",
				"content": "We are launching our platform next week.",
				"type":    "long",
				"status":  "published",
			},
			mockSetup: func(posts *MockPostRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(candidate, nil)
				posts.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Post).ID = 5
				}).Return(nil)
				posts.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{
					ID:       5,
					Title:    "Campaign kickoff",
					AuthorID: 1,
					Status:   models.PostStatusPublished,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "Voter cannot post",
			userID: 2,
			body: map[string]interface{}{
				"title":   "I want to post",
				"content": "Hello",
			},
			mockSetup: func(posts *MockPostRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(2)).Return(voter, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "Missing content",
			userID: 1,
			body: map[string]interface{}{
				"title": "Empty",
			},
			mockSetup: func(posts *MockPostRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(candidate, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Short post derives title",
			userID: 1,
			body: map[string]interface{}{
				"content": "Quick update from the campaign trail",
				"type":    "short",
			},
			mockSetup: func(posts *MockPostRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(candidate, nil)
				posts.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
					return p.Title == "Quick update from the campaign trail"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Post).ID = 6
				}).Return(nil)
				posts.On("GetByID", mock.Anything, uint(6)).Return(&models.Post{ID: 6, AuthorID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			userRepo := new(MockUserRepository)
			tt.mockSetup(postRepo, userRepo)

			s := newPostTestServer(postRepo, userRepo)
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals("userID", tt.userID)
				return c.Next()
			})
			app.Post("/posts", s.CreatePost)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			postRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestGetPosts_FiltersForwarded(t *testing.T) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	postRepo.On("List", mock.Anything, repository.PostFilters{
		Status: models.PostStatusPublished,
		Type:   models.PostTypeShort,
	}, 20, 0).Return([]*models.Post{{ID: 1}, {ID: 2}}, nil)

	s := newPostTestServer(postRepo, userRepo)
	app := fiber.New()
	app.Get("/posts", s.GetPosts)

	req := httptest.NewRequest(http.MethodGet, "/posts?status=published&type=short", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	assert.Len(t, posts, 2)
	postRepo.AssertExpectations(t)
}

func TestGetPosts_InvalidStatus(t *testing.T) {
	s := newPostTestServer(new(MockPostRepository), new(MockUserRepository))
	app := fiber.New()
	app.Get("/posts", s.GetPosts)

	req := httptest.NewRequest(http.MethodGet, "/posts?status=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordPostView(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("IncrementViews", mock.Anything, uint(9)).Return(nil)

	s := newPostTestServer(postRepo, new(MockUserRepository))
	app := fiber.New()
	app.Post("/posts/:id/view", s.RecordPostView)

	req := httptest.NewRequest(http.MethodPost, "/posts/9/view", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	postRepo.AssertExpectations(t)
}

func TestUpdatePost_OnlyAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Post{
		ID:       3,
		AuthorID: 1,
	}, nil)

	s := newPostTestServer(postRepo, new(MockUserRepository))
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(2)) // not the author
		return c.Next()
	})
	app.Put("/posts/:id", s.UpdatePost)

	body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
	req := httptest.NewRequest(http.MethodPut, "/posts/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeletePost(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Post{
		ID:       3,
		AuthorID: 1,
	}, nil)
	postRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

	s := newPostTestServer(postRepo, new(MockUserRepository))
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Delete("/posts/:id", s.DeletePost)

	req := httptest.NewRequest(http.MethodDelete, "/posts/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	postRepo.AssertExpectations(t)
}
