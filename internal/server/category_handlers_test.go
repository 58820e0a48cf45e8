package server

import (
	"bytes"
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

func newCategoryTestServer(categories *MockCategoryRepository, users *MockUserRepository) *Server {
	return &Server{
		userRepo:        users,
		categoryService: service.NewCategoryService(categories),
	}
}

func TestGetCategories(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("List", mock.Anything, true).Return([]*models.Category{
		{ID: 1, Name: "Bienestar Estudiantil", Slug: "bienestar-estudiantil"},
		{ID: 2, Name: "Infraestructura", Slug: "infraestructura"},
	}, nil)

	s := newCategoryTestServer(categories, new(MockUserRepository))
	app := fiber.New()
	app.Get("/categories", s.GetCategories)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 2)
	categories.AssertExpectations(t)
}

func TestGetCategories_IncludeInactive(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("List", mock.Anything, false).Return([]*models.Category{}, nil)

	s := newCategoryTestServer(categories, new(MockUserRepository))
	app := fiber.New()
	app.Get("/categories", s.GetCategories)

	req := httptest.NewRequest(http.MethodGet, "/categories?active=false", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	categories.AssertExpectations(t)
}

func TestGetCategoryBySlug(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("GetBySlug", mock.Anything, "bienestar-estudiantil").
		Return(&models.Category{ID: 1, Slug: "bienestar-estudiantil"}, nil)

	s := newCategoryTestServer(categories, new(MockUserRepository))
	app := fiber.New()
	app.Get("/categories/:slug", s.GetCategoryBySlug)

	req := httptest.NewRequest(http.MethodGet, "/categories/bienestar-estudiantil", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	categories.AssertExpectations(t)
}

func TestCreateCategory(t *testing.T) {
	candidate := &models.User{ID: 1, UserType: models.UserTypeCandidate}

	tests := []struct {
		name           string
		userID         uint
		body           map[string]interface{}
		mockSetup      func(categories *MockCategoryRepository, users *MockUserRepository)
		expectedStatus int
	}{
		{
			name:   "Candidate creates with derived slug",
			userID: 1,
			body:   map[string]interface{}{"name": "Bienestar Estudiantil"},
			mockSetup: func(categories *MockCategoryRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(candidate, nil)
				categories.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
					return c.Slug == "bienestar-estudiantil" && c.IsActive
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "Voter rejected",
			userID: 2,
			body:   map[string]interface{}{"name": "Deportes"},
			mockSetup: func(categories *MockCategoryRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(2)).
					Return(&models.User{ID: 2, UserType: models.UserTypeVoter}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "Reserved slug rejected",
			userID: 1,
			body:   map[string]interface{}{"name": "Posts", "slug": "posts"},
			mockSetup: func(categories *MockCategoryRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(candidate, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Missing name",
			userID: 1,
			body:   map[string]interface{}{},
			mockSetup: func(categories *MockCategoryRepository, users *MockUserRepository) {
				users.On("GetByID", mock.Anything, uint(1)).Return(candidate, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryRepository)
			users := new(MockUserRepository)
			tt.mockSetup(categories, users)

			s := newCategoryTestServer(categories, users)
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals("userID", tt.userID)
				return c.Next()
			})
			app.Post("/categories", s.CreateCategory)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			categories.AssertExpectations(t)
		})
	}
}

func TestUpdateCategory_SlugIsStable(t *testing.T) {
	categories := new(MockCategoryRepository)
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, UserType: models.UserTypeCandidate}, nil)
	categories.On("GetByID", mock.Anything, uint(3)).Return(&models.Category{
		ID:   3,
		Name: "Bienestar",
		Slug: "bienestar",
	}, nil)
	categories.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Name == "Bienestar y Deporte" && c.Slug == "bienestar"
	})).Return(nil)

	s := newCategoryTestServer(categories, users)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Put("/categories/:id", s.UpdateCategory)

	body, _ := json.Marshal(map[string]string{"name": "Bienestar y Deporte"})
	req := httptest.NewRequest(http.MethodPut, "/categories/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	categories.AssertExpectations(t)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Bienestar Estudiantil", "bienestar-estudiantil"},
		{"Investigación y Ciencia", "investigacion-y-ciencia"},
		{"  Deporte  ", "deporte"},
		{"¡Año Académico!", "ano-academico"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.Slugify(tt.name))
		})
	}
}
