// Package i18n translates user-facing strings from YAML locale files.
//
// Translations are loaded once through a TranslationAdapter and kept in
// memory. Keys use dot notation for nested maps and values may contain named
// placeholders in the form "%{name}":
//
//	pt:
//	  search:
//	    results: "Subpastas/arquivos encontrados em '%{proposal}':"
//
//	msg := translator.T("pt", "search.results", "proposal", "12345")
//
// Middleware negotiates the request language from the "lang" query parameter,
// the "lang" cookie and the Accept-Language header, matching against the
// loaded languages with golang.org/x/text/language, and stores the result in
// the request context. Tc reads it back:
//
//	r := chi.NewRouter()
//	r.Use(i18n.Middleware(translator))
//	...
//	title := translator.Tc(r.Context(), "search.title")
package i18n
