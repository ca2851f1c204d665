package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tokoadmin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryStore() *repositories.Store {
	return &repositories.Store{
		Driver:     "memory",
		Products:   repositories.NewMockProductRepository(),
		Categories: repositories.NewMockCategoryRepository(),
		Users:      repositories.NewMockUserRepository(),
	}
}

func TestHealth(t *testing.T) {
	srv := New(Deps{Store: memoryStore(), JWTSecret: "secret"})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["catalog_driver"])
	assert.Equal(t, false, body["events"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(Deps{Store: memoryStore(), JWTSecret: "secret"})

	// One request so the HTTP counters have a sample.
	_, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "tokoadmin_http_requests_total")
}

func TestUnknownRouteUsesJSONError(t *testing.T) {
	srv := New(Deps{Store: memoryStore(), JWTSecret: "secret"})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Not Found", body["message"])
}

func TestAdminRequiresToken(t *testing.T) {
	srv := New(Deps{Store: memoryStore(), JWTSecret: "secret"})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/admin/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServesLocalUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lamp.png"), []byte("png-bytes"), 0o644))

	srv := New(Deps{Store: memoryStore(), JWTSecret: "secret", UploadDir: dir, UploadURLPrefix: "/uploads"})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/uploads/lamp.png", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(raw))
}
