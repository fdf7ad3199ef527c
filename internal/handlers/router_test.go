package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/render"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/logger"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository/postgres"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/service/auth"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/service/auth/tokenmanager"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/service/todo"
)

// newTestRouter wires the full handler stack over the given transaction
func newTestRouter(t *testing.T, tx pgx.Tx) http.Handler {
	t.Helper()

	storage := postgres.NewStorage(tx)

	manager, err := tokenmanager.New(tokenmanager.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
	})
	require.NoError(t, err)

	authService, err := auth.NewService(auth.Config{}, manager, storage)
	require.NoError(t, err)

	return NewRouter(
		authService,
		todo.NewWebService(storage),
		todo.NewMobileService(storage),
		logger.NewNoOpLogger(),
	)
}

// do performs a request against the router and returns the recorder
// Empty token leaves the Authorization header unset
func do(t *testing.T, router http.Handler, method string, path string, body string, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, path, reader)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

// successData unmarshals the success envelope and returns its data
func successData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "response should be valid JSON: %s", rec.Body.String())
	require.True(t, body.Success, "expected success envelope, got: %s", rec.Body.String())
	return body.Data
}

// errorBody unmarshals the error envelope
func errorBody(t *testing.T, rec *httptest.ResponseRecorder) render.ErrorBody {
	t.Helper()

	var body render.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "response should be valid JSON: %s", rec.Body.String())
	require.False(t, body.Success, "expected error envelope, got: %s", rec.Body.String())
	return body.Error
}

// registerAndLogin creates a user through the API and returns the token pair
func registerAndLogin(t *testing.T, router http.Handler, email string) (access string, refresh string) {
	t.Helper()

	rec := do(t, router, "POST", "/auth/register", `{"email": "`+email+`", "password": "password"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, "register should succeed: %s", rec.Body.String())

	rec = do(t, router, "POST", "/auth/login", `{"email": "`+email+`", "password": "password"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, "login should succeed: %s", rec.Body.String())

	data := successData(t, rec)
	tokens, ok := data["tokens"].(map[string]any)
	require.True(t, ok, "login response should contain tokens")

	access, _ = tokens["accessToken"].(string)
	refresh, _ = tokens["refreshToken"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}
