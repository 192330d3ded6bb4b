package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unus-solutions/propdocs/pkg/cookie"
)

func TestManager_Set(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()
		rec := httptest.NewRecorder()

		require.NoError(t, m.Set(rec, "token", "abc"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "token", c.Name)
		assert.Equal(t, "abc", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.Secure)
		assert.Zero(t, c.MaxAge)
	})

	t.Run("per call options override defaults", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"))
		rec := httptest.NewRecorder()

		require.NoError(t, m.Set(rec, "token", "abc", cookie.WithMaxAge(3600), cookie.WithPath("/app")))

		c := rec.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, "example.com", c.Domain)
		assert.Equal(t, 3600, c.MaxAge)
		assert.Equal(t, "/app", c.Path)
		assert.False(t, c.Expires.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		err := cookie.New().Set(httptest.NewRecorder(), "", "abc")
		assert.ErrorIs(t, err, cookie.ErrInvalidName)
	})
}

func TestManager_Get(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	t.Run("present", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "abc"})

		v, err := m.Get(req, "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "token")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithPath("/app"))
	rec := httptest.NewRecorder()

	m.Delete(rec, "token")

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "token", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.Equal(t, "/app", c.Path)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	cfg.Secure = true
	cfg.SameSite = http.SameSiteStrictMode
	m := cookie.NewFromConfig(cfg)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "token", "abc"))

	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}
