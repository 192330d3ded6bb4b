package i18n

import (
	"net/http"
	"strings"
)

// maxAcceptLanguageLength bounds the header handed to the tag parser.
const maxAcceptLanguageLength = 4096

// LangExtractor returns the raw language preferences of a request, most
// specific first.
type LangExtractor func(r *http.Request) []string

type middlewareConfig struct {
	cookieName string
	queryParam string
	extractor  LangExtractor
}

type MiddlewareOption func(*middlewareConfig)

// WithCookieName sets the cookie checked for an explicit preference. Empty disables it.
func WithCookieName(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.cookieName = name }
}

// WithQueryParamName sets the query parameter checked for an explicit preference. Empty disables it.
func WithQueryParamName(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.queryParam = name }
}

// WithExtractor replaces the built-in extraction entirely.
func WithExtractor(extr LangExtractor) MiddlewareOption {
	return func(c *middlewareConfig) {
		if extr != nil {
			c.extractor = extr
		}
	}
}

// Middleware stores the negotiated language in the request context.
func Middleware(t *Translator, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{cookieName: "lang", queryParam: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.extractor == nil {
		cfg.extractor = defaultExtractor(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := t.Match(cfg.extractor(r)...)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}

func defaultExtractor(cfg *middlewareConfig) LangExtractor {
	return func(r *http.Request) []string {
		var prefs []string
		if cfg.queryParam != "" {
			if v := strings.TrimSpace(r.URL.Query().Get(cfg.queryParam)); v != "" {
				prefs = append(prefs, v)
			}
		}
		if cfg.cookieName != "" {
			if c, err := r.Cookie(cfg.cookieName); err == nil && c.Value != "" {
				prefs = append(prefs, c.Value)
			}
		}
		if h := r.Header.Get("Accept-Language"); h != "" {
			if len(h) > maxAcceptLanguageLength {
				h = h[:maxAcceptLanguageLength]
			}
			prefs = append(prefs, h)
		}
		return prefs
	}
}
