// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", data["id"])
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "done")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
}

func TestPaginated(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		limit          int
		total          int
		wantTotalPages float64
	}{
		{name: "exact pages", page: 1, limit: 10, total: 30, wantTotalPages: 3},
		{name: "partial last page", page: 2, limit: 10, total: 25, wantTotalPages: 3},
		{name: "empty", page: 1, limit: 20, total: 0, wantTotalPages: 0},
		{name: "single item", page: 1, limit: 20, total: 1, wantTotalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Paginated(rec, []string{}, tt.page, tt.limit, tt.total)

			assert.Equal(t, http.StatusOK, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, true, body["success"])

			pagination, ok := body["pagination"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(tt.page), pagination["page"])
			assert.Equal(t, float64(tt.limit), pagination["limit"])
			assert.Equal(t, float64(tt.total), pagination["total"])
			assert.Equal(t, tt.wantTotalPages, pagination["total_pages"])
		})
	}
}

func TestJSONErrorWithAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, ConflictError("employer is already approved"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "employer is already approved", body["message"])
}

func TestJSONErrorWithPlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, ErrInvalidInput)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeBody(t, rec)["message"])
}

func TestNotFoundResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "job")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "job not found", decodeBody(t, rec)["message"])
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Unauthorized(rec, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", decodeBody(t, rec)["message"])
}
