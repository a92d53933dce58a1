// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
)

type staticVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (v *staticVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	return v.claims, v.err
}

func okHandler(captured *AccessTokenClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.UserID = GetUserID(r.Context())
			captured.Email = GetUserEmail(r.Context())
			captured.Role = GetUserRole(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	handler := Authenticator(&staticVerifier{})(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorRejectsInvalidToken(t *testing.T) {
	verifier := &staticVerifier{err: core.ErrTokenInvalid}
	handler := Authenticator(verifier)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInjectsClaims(t *testing.T) {
	verifier := &staticVerifier{
		claims: &AccessTokenClaims{
			UserID: "user-1",
			Email:  "amina@example.com",
			Role:   "job-seeker",
		},
	}

	var captured AccessTokenClaims
	handler := Authenticator(verifier)(okHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", captured.UserID)
	assert.Equal(t, "amina@example.com", captured.Email)
	assert.Equal(t, "job-seeker", captured.Role)
}

func TestOptionalAuthPassesThroughWithoutToken(t *testing.T) {
	handler := OptionalAuth(&staticVerifier{})(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	ctx = context.WithValue(ctx, UserIDKey, "user-1")
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("admin"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("employer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	handler := RequireRole("employer")(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "no token", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}
