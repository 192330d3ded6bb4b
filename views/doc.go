// Package views renders the portal's HTML as templ components.
//
// Every user-visible string is a translation key resolved against the
// request locale at render time. Locale files are embedded from locales/ and
// exposed as Locales for the i18n loader.
package views
