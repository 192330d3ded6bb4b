package views

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/unus-solutions/propdocs/handler"
	"github.com/unus-solutions/propdocs/svc/documents"
)

//go:embed locales/*.yaml
var locales embed.FS

// Locales holds the embedded locale files under "locales/".
var Locales fs.FS = locales

// LocalesDir is the directory inside Locales holding the YAML files.
const LocalesDir = "locales"

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// Translator resolves a key in the locale stored in ctx.
type Translator interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// Views builds page components.
type Views struct {
	t Translator
}

func New(t Translator) *Views {
	return &Views{t: t}
}

// LoginParams feeds the login page and form.
type LoginParams struct {
	Username string
	Failed   bool
}

// SearchParams feeds the search page.
type SearchParams struct {
	DisplayName string
	Results     ResultsParams
}

// ResultsParams feeds the #results block.
type ResultsParams struct {
	Proposal  string
	Documents []documents.Document
	LinkTTL   time.Duration
	// Invalid marks a proposal number that was rejected before listing.
	Invalid bool
	// ErrorKey is a translation key shown above the results, e.g. after a failed archive build.
	ErrorKey string
}

// Submitted reports whether the user entered a proposal number.
func (p ResultsParams) Submitted() bool {
	return p.Proposal != ""
}

// ArchiveURL is the download-all link of the proposal.
func (p ResultsParams) ArchiveURL() string {
	return "/proposals/" + url.PathEscape(p.Proposal) + "/archive"
}

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

func (v *Views) layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><script type="module" src="` + datastarScript + `"></script></head><body>`)
		h.raw(`<div id="toast-container"></div><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

// LoginPage is the full page shown to unauthenticated visitors.
func (v *Views) LoginPage(p LoginParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return v.layout(v.t.Tc(ctx, "app.title"), v.LoginForm(p)).Render(ctx, w)
	})
}

// LoginForm is the #login-form block with the prompt or the failure message.
func (v *Views) LoginForm(p LoginParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="login-form"><h1>`)
		h.text(v.t.Tc(ctx, "app.title"))
		h.raw(`</h1>`)
		if p.Failed {
			h.raw(`<p class="alert alert-error" role="alert">`)
			h.text(v.t.Tc(ctx, "login.failed"))
		} else {
			h.raw(`<p class="alert alert-warning">`)
			h.text(v.t.Tc(ctx, "login.prompt"))
		}
		h.raw(`</p><form method="post" action="/login">`)
		h.raw(`<label for="username">`)
		h.text(v.t.Tc(ctx, "login.username"))
		h.raw(`</label><input id="username" name="username" type="text" autocomplete="username" value="`)
		h.text(p.Username)
		h.raw(`"><label for="password">`)
		h.text(v.t.Tc(ctx, "login.password"))
		h.raw(`</label><input id="password" name="password" type="password" autocomplete="current-password">`)
		h.raw(`<button type="submit">`)
		h.text(v.t.Tc(ctx, "login.submit"))
		h.raw(`</button></form></section>`)
		return h.err
	})
}

// SearchPage is the full page for authenticated users.
func (v *Views) SearchPage(p SearchParams) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		signals, err := json.Marshal(map[string]string{"proposta": p.Results.Proposal})
		if err != nil {
			return fmt.Errorf("views: encode signals: %w", err)
		}

		h.raw(`<header><h1>`)
		h.text(v.t.Tc(ctx, "app.title"))
		h.raw(`</h1><form method="post" action="/logout"><span>`)
		h.text(v.t.Tc(ctx, "logout.greeting", "name", p.DisplayName))
		h.raw(`</span> <button type="submit">`)
		h.text(v.t.Tc(ctx, "logout.submit"))
		h.raw(`</button></form></header>`)

		h.raw(`<form id="search" method="get" action="/" data-signals="`)
		h.text(string(signals))
		h.raw(`" data-on-submit__prevent="@get('/')"><label for="proposta">`)
		h.text(v.t.Tc(ctx, "search.label"))
		h.raw(`</label><input id="proposta" name="proposta" type="text" data-bind-proposta value="`)
		h.text(p.Results.Proposal)
		h.raw(`"><button type="submit">`)
		h.text(v.t.Tc(ctx, "search.submit"))
		h.raw(`</button></form>`)

		h.component(ctx, v.Results(p.Results))
		return h.err
	})

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return v.layout(v.t.Tc(ctx, "app.title"), body).Render(ctx, w)
	})
}

// Results is the #results block: nothing before a search, the not-found
// notice for an empty match set, otherwise the links and the download-all button.
func (v *Views) Results(p ResultsParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="results">`)

		if p.ErrorKey != "" {
			h.raw(`<p class="alert alert-error" role="alert">`)
			h.text(v.t.Tc(ctx, p.ErrorKey))
			h.raw(`</p>`)
		}

		switch {
		case !p.Submitted():
		case p.Invalid:
			h.raw(`<p class="alert alert-warning">`)
			h.text(v.t.Tc(ctx, "search.invalid", "proposal", p.Proposal))
			h.raw(`</p>`)
		case len(p.Documents) == 0:
			if p.ErrorKey == "" {
				h.raw(`<p class="notice">`)
				h.text(v.t.Tc(ctx, "search.not_found", "proposal", p.Proposal))
				h.raw(`</p>`)
			}
		default:
			h.raw(`<p>`)
			h.text(v.t.Tc(ctx, "search.results", "proposal", p.Proposal))
			h.raw(`</p><ul class="documents">`)
			for _, doc := range p.Documents {
				h.raw(`<li><a href="`)
				h.text(doc.URL)
				h.raw(`" target="_blank" rel="noopener">`)
				h.text(doc.Label)
				h.raw(`</a> <small>`)
				h.text(doc.HumanSize())
				h.raw(`</small></li>`)
			}
			h.raw(`</ul>`)
			if p.LinkTTL > 0 {
				h.raw(`<p><small>`)
				h.text(v.t.Tc(ctx, "search.link_expiry", "minutes", strconv.Itoa(int(p.LinkTTL/time.Minute))))
				h.raw(`</small></p>`)
			}
			h.raw(`<a class="button" href="`)
			h.text(p.ArchiveURL())
			h.raw(`" title="`)
			h.text(v.t.Tc(ctx, "search.download_hint"))
			h.raw(`">`)
			h.text(v.t.Tc(ctx, "search.download_all"))
			h.raw(`</a>`)
		}

		h.raw(`</section>`)
		return h.err
	})
}

// ErrorPage renders a full error page for handler.NewErrorHandler.
func (v *Views) ErrorPage(p handler.ErrorPageParams) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="error"><h1>`)
		h.text(v.t.Tc(ctx, "errors.page_title", "status", strconv.Itoa(p.StatusCode)))
		h.raw(`</h1><p>`)
		h.text(p.Error)
		h.raw(`</p>`)
		if p.RequestID != "" {
			h.raw(`<p><small>`)
			h.text(v.t.Tc(ctx, "errors.request_id", "id", p.RequestID))
			h.raw(`</small></p>`)
		}
		if p.RetryURL != "" {
			h.raw(`<a href="`)
			h.text(p.RetryURL)
			h.raw(`">`)
			h.text(v.t.Tc(ctx, "errors.retry"))
			h.raw(`</a>`)
		}
		h.raw(`</section>`)
		return h.err
	})

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return v.layout(v.t.Tc(ctx, "app.title"), body).Render(ctx, w)
	})
}

// ErrorToast renders a notification prepended to #toast-container.
func (v *Views) ErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="toast toast-`)
		h.text(p.Type)
		h.raw(`" role="alert" data-request-id="`)
		h.text(p.RequestID)
		h.raw(`">`)
		h.text(p.Message)
		h.raw(`</div>`)
		return h.err
	})
}
