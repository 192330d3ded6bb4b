// Package cookie sets, reads and deletes HTTP cookies with shared defaults.
//
// A Manager carries default attributes (Path, Domain, Secure, HttpOnly,
// SameSite) that every Set call inherits; per-call Options override them.
// Values are stored verbatim, so callers that need integrity protection put a
// signed token into the cookie (see pkg/session).
//
//	m := cookie.New(cookie.WithSecure(true))
//	m.Set(w, "propdocs_auth", token, cookie.WithMaxAge(30*24*3600))
//	v, err := m.Get(r, "propdocs_auth") // cookie.ErrCookieNotFound when absent
//	m.Delete(w, "propdocs_auth")
package cookie
