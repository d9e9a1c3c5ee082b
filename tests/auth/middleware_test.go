package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_Authenticate(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	signed, _, err := tokens.IssueToken(testUser())
	require.NoError(t, err)

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "polier@hauptbau.de", user.Email)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_Authenticate_MissingHeader(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_Authenticate_MalformedHeader(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	mw.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_RequireRole(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	worker := testUser()
	worker.Role = domain.RoleWorker
	signed, _, err := tokens.IssueToken(worker)
	require.NoError(t, err)

	handler := mw.Authenticate(
		mw.RequireRole(domain.RoleAdmin, domain.RoleSiteManager)(okHandler()),
	)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/abc", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddleware_RequireRole_Allowed(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	signed, _, err := tokens.IssueToken(testUser())
	require.NoError(t, err)

	handler := mw.Authenticate(
		mw.RequireRole(domain.RoleAdmin, domain.RoleSiteManager)(okHandler()),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_RequireRole_NoContext(t *testing.T) {
	tokens := newTokenService(t, "test-secret", "fieldops-test")
	mw := auth.NewMiddleware(tokens, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	mw.RequireRole(domain.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
