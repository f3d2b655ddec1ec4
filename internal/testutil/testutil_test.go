package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/httpx"
)

func TestNewRequest_EncodesBody(t *testing.T) {
	r := NewRequest(http.MethodPost, "/books", map[string]any{"title": "Dune"})
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Dune"}`, string(body))

	assert.Empty(t, NewRequest(http.MethodGet, "/books", nil).Header.Get("Content-Type"))
}

func TestRecordHTTPResponse_ReadsEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books/1", nil)
	r = r.WithContext(httpx.ContextWithRequestID(r.Context(), "req-7"))
	httpx.JSONSuccess(w, r, map[string]any{"id": 1, "title": "Dune"}, nil)

	rec := RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, rec.Body["success"])
	assert.Equal(t, "Dune", rec.Data()["title"])
	assert.Equal(t, "req-7", rec.Meta()["request_id"])
}
