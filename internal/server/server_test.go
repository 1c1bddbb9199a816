package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/config"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/db/migrations"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logging.Disable()
	migrations.QuietMode = true

	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "server_test.db")
	cfg.Auth.AccessSecret = "test-secret"
	cfg.Oracle.APIKey = "" // no provider: chat degrades to the apology path

	svcCtx, err := svc.NewServiceContext(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svcCtx.Close() })

	ts := httptest.NewServer(NewRouter(svcCtx, true))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		payload = nil
	}
	return resp, payload
}

func registerUser(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()
	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", types.RegisterRequest{
		Email:    email,
		Name:     "Test User",
		Password: "superseekrit",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", payload["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "alice@example.com")

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "superseekrit",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, payload["token"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", types.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown email is indistinguishable from a bad password.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "superseekrit",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", types.RegisterRequest{
		Email: "not-an-email", Name: "X", Password: "superseekrit",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", types.RegisterRequest{
		Email: "bob@example.com", Name: "Bob", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	registerUser(t, ts, "carol@example.com")
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", types.RegisterRequest{
		Email: "carol@example.com", Name: "Carol Again", Password: "superseekrit",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/chat"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/conversations"},
	} {
		resp, _ := doJSON(t, route.method, ts.URL+route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/tasks", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTaskCRUDOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "dave@example.com")

	resp, created := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", token, types.CreateTaskRequest{
		Title: "buy milk", Description: "2 liters",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int64(created["id"].(float64))
	assert.Equal(t, "pending", created["status"])

	resp, listed := doJSON(t, http.MethodGet, ts.URL+"/api/tasks?status=pending", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), listed["total"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/tasks?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	url := fmt.Sprintf("%s/api/tasks/%d", ts.URL, taskID)
	resp, updated := doJSON(t, http.MethodPut, url, token, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", updated["status"])

	resp, got := doJSON(t, http.MethodGet, url, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "buy milk", got["title"])

	resp, deleted := doJSON(t, http.MethodDelete, url, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, deleted["success"])

	resp, _ = doJSON(t, http.MethodGet, url, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTasksAreOwnerScopedOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	tokenA := registerUser(t, ts, "erin@example.com")
	tokenB := registerUser(t, ts, "frank@example.com")

	resp, created := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", tokenA, types.CreateTaskRequest{Title: "private"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int64(created["id"].(float64))

	url := fmt.Sprintf("%s/api/tasks/%d", ts.URL, taskID)
	resp, _ = doJSON(t, http.MethodGet, url, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, listed := doJSON(t, http.MethodGet, ts.URL+"/api/tasks", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), listed["total"])
}

func TestChatDegradesWithoutProvider(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "grace@example.com")

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/api/chat", token, types.ChatRequest{
		Message: "add buy milk",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["error"])
	assert.NotEmpty(t, payload["response"])
	convID, _ := payload["conversation_id"].(string)
	assert.NotEmpty(t, convID)

	// The degraded turn still created the conversation.
	resp, conversations := doJSON(t, http.MethodGet, ts.URL+"/api/conversations", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), conversations["total"])

	// A foreign conversation id is rejected as not found.
	other := registerUser(t, ts, "heidi@example.com")
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/chat", other, types.ChatRequest{
		Message:        "hello",
		ConversationID: convID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// An empty message is a validation error.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/chat", token, types.ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
