package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"microlog/internal/config"
	"microlog/internal/database"
	"microlog/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:     "test-secret",
		PostsPerPage:  25,
		ResetTokenTTL: 10 * time.Minute,
		MailSender:    "no-reply@example.com",
		Env:           "test",
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// newTestServer builds a server on an in-memory database with no Redis:
// search degrades to noop and rate limits are bypassed in the test env.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	return newTestServerWith(t, nil)
}

// newTestServerWithRedis builds a server backed by miniredis, enabling the
// search index.
func newTestServerWithRedis(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return newTestServerWith(t, client)
}

func newTestServerWith(t *testing.T, redisClient *redis.Client) (*Server, *fiber.App) {
	t.Helper()
	cfg := testConfig()
	cfg.SearchEnabled = redisClient != nil
	middleware.InitMiddleware(cfg)

	srv, err := NewServerWithDeps(cfg, newTestDB(t), redisClient)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the response and its decoded JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// signupUser registers an account through the API and returns its token.
func signupUser(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup failed: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
