package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unus-solutions/propdocs/handler"
)

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headers  map[string]string
		query    string
		expected bool
	}{
		{name: "SSE Accept header", headers: map[string]string{"Accept": "text/event-stream"}, expected: true},
		{name: "SSE Accept header with other values", headers: map[string]string{"Accept": "text/html, text/event-stream, */*"}, expected: true},
		{name: "DataStar query parameter", query: `?datastar={"proposta":"1"}`, expected: true},
		{name: "DataStar content type", headers: map[string]string{"Content-Type": "application/x-datastar"}, expected: true},
		{name: "Regular request", headers: map[string]string{"Accept": "text/html"}, expected: false},
		{name: "No headers", headers: map[string]string{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/test"+tt.query, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, handler.IsDataStar(req))
		})
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("DataStar redirect", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Accept", "text/event-stream")
		w := httptest.NewRecorder()

		require.NoError(t, handler.Redirect("/").Render(w, req))
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "datastar-patch-elements")
	})

	t.Run("Regular redirect", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/").Render(w, httptest.NewRequest(http.MethodPost, "/login", nil)))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("custom code", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, handler.RedirectWithCode("/x", http.StatusFound).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusFound, w.Code)
	})
}
