// Package binder populates request structs from HTTP request data.
//
// Each binder reads one source and honours one struct tag:
//
//   - Query(): URL query parameters, `query:"name"`
//   - Form(): urlencoded or multipart form values, `form:"name"`
//   - Path(extractor): router path parameters, `path:"name"`
//   - Signals(): datastar signals, `json:"name"`
//
// A tag of "-" skips the field. Binders that do not apply to a request
// (Form on a request without a form body, Signals on a plain browser request)
// return ErrBinderNotApplicable, which handler.Wrap skips, so the same request
// struct can be fed from several sources:
//
//	type SearchRequest struct {
//		Proposal string `query:"proposta" json:"proposta"`
//	}
//
//	r.Get("/", handler.Wrap(search,
//		handler.WithBinders[handler.Context, SearchRequest](binder.Query(), binder.Signals()),
//	))
//
// Supported field types are string, signed and unsigned integers, floats,
// bool, pointers to those and slices of those.
package binder
