package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unus-solutions/propdocs/pkg/binder"
)

type searchRequest struct {
	Proposal string   `query:"proposta" form:"proposta" json:"proposta"`
	Page     int      `query:"page" form:"page" json:"page"`
	Tags     []string `query:"tags" form:"-" json:"tags"`
	Active   *bool    `query:"active" form:"active" json:"active"`
	Internal string   `query:"-" form:"-" json:"-"`
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?proposta=12345&page=2&tags=a,b&tags=c&active=on&Internal=x", nil)

		var got searchRequest
		require.NoError(t, binder.Query()(req, &got))
		assert.Equal(t, "12345", got.Proposal)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
		require.NotNil(t, got.Active)
		assert.True(t, *got.Active)
		assert.Empty(t, got.Internal)
	})

	t.Run("missing params keep zero values", func(t *testing.T) {
		t.Parallel()
		var got searchRequest
		require.NoError(t, binder.Query()(httptest.NewRequest(http.MethodGet, "/", nil), &got))
		assert.Equal(t, searchRequest{}, got)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()
		var got searchRequest
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/?page=abc", nil), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/", nil), searchRequest{})
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	type loginRequest struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"username": {"jsmith"}, "password": {"secret"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got loginRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, loginRequest{Username: "jsmith", Password: "secret"}, got)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("username", "jsmith"))
		require.NoError(t, mw.WriteField("password", "secret"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/login", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var got loginRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "jsmith", got.Username)
	})

	t.Run("no content type is not applicable", func(t *testing.T) {
		t.Parallel()
		var got loginRequest
		err := binder.Form()(httptest.NewRequest(http.MethodPost, "/login", nil), &got)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("<x/>"))
		req.Header.Set("Content-Type", "application/xml")

		var got loginRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrUnsupportedMediaType)
	})

	t.Run("json body is left to signals", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		var got loginRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("query values are not form values", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login?username=fromquery", strings.NewReader("password=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got loginRequest
		require.NoError(t, binder.Form()(req, &got))
		assert.Empty(t, got.Username)
		assert.Equal(t, "x", got.Password)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type archiveRequest struct {
		Proposal string `path:"proposal"`
		Skip     string `path:"-"`
	}

	params := map[string]string{"proposal": "12345", "Skip": "no"}
	extractor := func(_ *http.Request, name string) string { return params[name] }

	var got archiveRequest
	require.NoError(t, binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), &got))
	assert.Equal(t, "12345", got.Proposal)
	assert.Empty(t, got.Skip)

	err := binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &got)
	assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("get with datastar query", func(t *testing.T) {
		t.Parallel()
		q := url.Values{"datastar": {`{"proposta":"12345","page":3}`}}.Encode()
		req := httptest.NewRequest(http.MethodGet, "/?"+q, nil)

		var got searchRequest
		require.NoError(t, binder.Signals()(req, &got))
		assert.Equal(t, "12345", got.Proposal)
		assert.Equal(t, 3, got.Page)
	})

	t.Run("post with json body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"proposta":"777"}`))
		req.Header.Set("Content-Type", "application/json")

		var got searchRequest
		require.NoError(t, binder.Signals()(req, &got))
		assert.Equal(t, "777", got.Proposal)
	})

	t.Run("plain request is not applicable", func(t *testing.T) {
		t.Parallel()
		var got searchRequest
		err := binder.Signals()(httptest.NewRequest(http.MethodGet, "/?proposta=1", nil), &got)
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?datastar=%7Bnot-json", nil)

		var got searchRequest
		assert.ErrorIs(t, binder.Signals()(req, &got), binder.ErrFailedToParseSignals)
	})
}
