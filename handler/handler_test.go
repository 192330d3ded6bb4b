package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unus-solutions/propdocs/handler"
	"github.com/unus-solutions/propdocs/pkg/binder"
)

type mockResponse struct {
	statusCode int
	body       string
	renderErr  error
}

func (m mockResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if m.renderErr != nil {
		return m.renderErr
	}
	w.WriteHeader(m.statusCode)
	_, _ = w.Write([]byte(m.body))
	return nil
}

type queryRequest struct {
	Proposal string `query:"proposta" json:"proposta"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
			return mockResponse{statusCode: http.StatusOK, body: req.Proposal}
		})
		wrapped := handler.Wrap(h, handler.WithBinders[handler.Context, queryRequest](binder.Query(), binder.Signals()))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/?proposta=12345", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12345", rec.Body.String())
	})

	t.Run("binder failure is a bad request", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
			t.Fatal("handler must not run")
			return nil
		})
		failing := func(*http.Request, any) error { return errors.New("broken") }
		wrapped := handler.Wrap(h, handler.WithBinders[handler.Context, queryRequest](failing))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("render error", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
			return mockResponse{renderErr: errors.New("render failed")}
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "render failed")
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), handler.ErrNilResponse.Error())
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
			return mockResponse{renderErr: handler.ErrNotFound}
		})
		wrapped := handler.Wrap(h, handler.WithErrorHandler[handler.Context, queryRequest](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNotFound)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, queryRequest] {
			return func(next handler.HandlerFunc[handler.Context, queryRequest]) handler.HandlerFunc[handler.Context, queryRequest] {
				return func(ctx handler.Context, req queryRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
			order = append(order, "handler")
			return mockResponse{statusCode: http.StatusOK}
		})

		handler.Wrap(h, handler.WithDecorators(mark("first"), mark("second")))(
			httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil),
		)
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})
}

func TestFail(t *testing.T) {
	t.Parallel()

	h := handler.HandlerFunc[handler.Context, queryRequest](func(ctx handler.Context, req queryRequest) handler.Response {
		return handler.Fail(handler.ErrServiceUnavailable)
	})
	rec := httptest.NewRecorder()
	handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.ErrorIs(t, handler.Fail(nil).Render(rec, nil), handler.ErrInternalServerError)
}
