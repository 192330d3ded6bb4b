// Package session keeps a signed, stateless login session in an HTTP cookie.
//
// A Session is an explicit value built for every request: Resolve reads the
// token from the Transport, verifies it with pkg/jwt and yields either an
// authenticated Session or the unauthenticated zero state. Nothing is stored
// server side, so logout is simply clearing the cookie.
//
//	mgr, err := session.New(cookieName, signingKey,
//		session.WithTTL(30*24*time.Hour),
//		session.WithCookieManager(cookie.NewFromConfig(cfg.Cookie)),
//	)
//	router.Use(mgr.Middleware)
//
//	sess, err := mgr.Issue(w, "jsmith", "John Smith") // after a successful login
//	sess = session.FromContext(r.Context())          // in handlers
//	sess = mgr.Clear(w)                               // on logout
//
// Invalid, expired or missing tokens are never errors for the caller: they
// resolve to StatusUnauthenticated.
package session
