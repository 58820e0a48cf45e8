package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tribuna/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketTestServer(t *testing.T) (*Server, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &Server{
		config: &config.Config{JWTSecret: "test-secret"},
		redis:  rdb,
	}, rdb
}

func TestAuthRequired_WSTicket(t *testing.T) {
	s, rdb := newTicketTestServer(t)

	app := fiber.New()
	app.Get("/api/ws/test", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	app.Get("/api/other", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	ctx := context.Background()

	t.Run("valid ticket authenticates and is consumed", func(t *testing.T) {
		key := "ws_ticket:ticket-1"
		require.NoError(t, rdb.Set(ctx, key, "123", time.Minute).Err())

		req := httptest.NewRequest(http.MethodGet, "/api/ws/test?ticket=ticket-1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(123), body["userID"])

		// Single-use: ticket must be gone
		exists, err := rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})

	t.Run("replayed ticket is rejected", func(t *testing.T) {
		key := "ws_ticket:ticket-2"
		require.NoError(t, rdb.Set(ctx, key, "7", time.Minute).Err())

		req := httptest.NewRequest(http.MethodGet, "/api/ws/test?ticket=ticket-2", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req2 := httptest.NewRequest(http.MethodGet, "/api/ws/test?ticket=ticket-2", nil)
		resp2, err := app.Test(req2)
		require.NoError(t, err)
		defer func() { _ = resp2.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
	})

	t.Run("invalid ticket on ws path returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ws/test?ticket=bogus", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ticket works on non-ws paths too", func(t *testing.T) {
		key := "ws_ticket:ticket-3"
		require.NoError(t, rdb.Set(ctx, key, "456", time.Minute).Err())

		req := httptest.NewRequest(http.MethodGet, "/api/other?ticket=ticket-3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		exists, err := rdb.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})
}

func TestIssueWSTicket(t *testing.T) {
	s, rdb := newTicketTestServer(t)

	app := fiber.New()
	app.Post("/api/ws/ticket", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(42))
		return s.IssueWSTicket(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ws/ticket", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Ticket    string `json:"ticket"`
		ExpiresIn int    `json:"expires_in"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Ticket)
	assert.Equal(t, int(wsTicketTTL.Seconds()), body.ExpiresIn)

	// The stored ticket maps back to the issuing user
	val, err := rdb.Get(context.Background(), fmt.Sprintf("ws_ticket:%s", body.Ticket)).Result()
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}

func TestIssueWSTicket_NoRedis(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: "test-secret"}}

	app := fiber.New()
	app.Post("/api/ws/ticket", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(42))
		return s.IssueWSTicket(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ws/ticket", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
