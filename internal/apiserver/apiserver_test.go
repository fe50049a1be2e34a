package apiserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/config"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// captureSender records reset codes instead of delivering them.
type captureSender struct {
	lastEmail string
	lastCode  string
}

func (s *captureSender) SendResetCode(email, code string) error {
	s.lastEmail = email
	s.lastCode = code
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		APIBaseURL: "http://localhost/api",
		Port:       "0",
		JWTSecret:  "unit-test-secret",
		DBPath:     filepath.Join(t.TempDir(), "test.db"),
		Env:        "test",
	}
}

// newTestServer spins up a server over temp-file SQLite, no Redis.
func newTestServer(t *testing.T) (*Server, *fiber.App, *captureSender) {
	t.Helper()

	cfg := testConfig(t)
	db, err := Connect(cfg)
	require.NoError(t, err)

	sender := &captureSender{}
	srv := NewServer(cfg, db, nil, sender)
	return srv, srv.NewApp(), sender
}

// newTestServerWithRedis also wires a miniredis-backed cache.
func newTestServerWithRedis(t *testing.T) (*Server, *fiber.App, *miniredis.Miniredis) {
	t.Helper()

	cfg := testConfig(t)
	db, err := Connect(cfg)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	srv := NewServer(cfg, db, client, &captureSender{})
	return srv, srv.NewApp(), mr
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

// signUpUser registers an account and returns its token and id.
func signUpUser(t *testing.T, app *fiber.App, username, email string) (string, uint) {
	t.Helper()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "Password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var env models.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NotEmpty(t, env.Token)
	return env.Token, env.UserID
}
