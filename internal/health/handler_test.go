// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(context.Context) error {
	return s.err
}

func TestLiveness(t *testing.T) {
	h := NewHandler(&stubChecker{}, &stubChecker{})

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLivenessDuringShutdown(t *testing.T) {
	h := NewHandler(&stubChecker{}, &stubChecker{})
	h.SetShutdown(true)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHandler(&stubChecker{}, &stubChecker{})

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Checks, 2)
	for _, check := range body.Checks {
		assert.True(t, check.Healthy)
	}
}

func TestReadinessDegradedOnRedisFailure(t *testing.T) {
	h := NewHandler(
		&stubChecker{},
		&stubChecker{err: errors.New("connection refused")},
	)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
}

func TestReadinessNotReady(t *testing.T) {
	h := NewHandler(&stubChecker{}, &stubChecker{})
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
