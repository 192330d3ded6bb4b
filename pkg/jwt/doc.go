// Package jwt signs and verifies HS256 JSON Web Tokens.
//
// Service wraps github.com/golang-jwt/jwt/v5 with a fixed signing method and
// maps its failures onto the sentinel errors in errors.go:
//
//	svc, err := jwt.NewFromString(key)
//	token, err := svc.Generate(&claims)
//	err = svc.Parse(token, &claims) // ErrExpiredToken, ErrInvalidSignature, ...
//
// Claims types embed jwt.RegisteredClaims (re-exported here) so expiry and
// not-before are validated during Parse.
package jwt
