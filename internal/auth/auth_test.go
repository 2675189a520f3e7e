package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/auth"
)

var testCfg = auth.Config{Secret: "test-secret", Issuer: "gorun.test", TTL: time.Hour}

func TestIssueParseRoundTrip(t *testing.T) {
	token, err := auth.Issue(42, "rider@example.com", testCfg)
	require.NoError(t, err)

	claims, err := auth.Parse(token, testCfg)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "rider@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(testCfg.TTL), claims.ExpiresAt, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := auth.Issue(42, "rider@example.com", testCfg)
	require.NoError(t, err)

	other := testCfg
	other.Secret = "another-secret"
	_, err = auth.Parse(token, other)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	expired := testCfg
	expired.TTL = -time.Hour
	token, err := auth.Issue(42, "rider@example.com", expired)
	require.NoError(t, err)

	_, err = auth.Parse(token, testCfg)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseRejectsEmptyToken(t *testing.T) {
	_, err := auth.Parse("", testCfg)
	assert.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestMiddlewareInjectsClaims(t *testing.T) {
	token, err := auth.Issue(7, "runner@example.com", testCfg)
	require.NoError(t, err)

	var got *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
	})

	mw := auth.NewMiddleware(testCfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	mw := auth.NewMiddleware(testCfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	mw.Wrap(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareSkipperBypassesAuth(t *testing.T) {
	mw := auth.NewMiddleware(testCfg, func(r *http.Request) bool {
		return r.URL.Path == "/healthz"
	})
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
