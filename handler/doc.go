// Package handler provides typed HTTP handlers that render templ components,
// patch the page through datastar server-sent events, redirect, or stream file
// attachments.
//
// A HandlerFunc receives a Context and a request struct populated by binders,
// and returns a Response:
//
//	type searchRequest struct {
//		Proposal string `query:"proposta" json:"proposta"`
//	}
//
//	func search(ctx handler.Context, req searchRequest) handler.Response {
//		results := views.Results(...)
//		return handler.TemplPartial(results, views.SearchPage(..., results), handler.WithTarget("#results"))
//	}
//
//	r.Get("/", handler.Wrap(search,
//		handler.WithBinders[handler.Context, searchRequest](binder.Query(), binder.Signals()),
//		handler.WithErrorHandler[handler.Context, searchRequest](errHandler),
//	))
//
// Responses pick their wire format from the request: datastar requests
// (Accept: text/event-stream or a "datastar" query parameter) get SSE patches,
// everything else gets plain HTML or HTTP redirects.
//
// Errors returned by binders or by Response.Render go to the configured
// ErrorHandler. NewErrorHandler builds one that maps HTTPError codes to status
// codes, logs with the request id and renders a localized error page or toast.
package handler
