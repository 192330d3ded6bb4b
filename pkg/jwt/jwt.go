package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// RegisteredClaims are the RFC 7519 registered claims.
type RegisteredClaims = gojwt.RegisteredClaims

// Claims is implemented by any struct embedding RegisteredClaims.
type Claims = gojwt.Claims

// NewNumericDate converts t to a JWT NumericDate truncated to seconds.
func NewNumericDate(t time.Time) *gojwt.NumericDate {
	return gojwt.NewNumericDate(t)
}

// Service handles token generation and validation using HMAC-SHA256.
type Service struct {
	signingKey []byte
	parser     *gojwt.Parser
}

// Option configures a Service.
type Option func(*options)

type options struct {
	leeway time.Duration
	timeFn func() time.Time
	issuer string
}

// WithLeeway tolerates clock skew when validating exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(o *options) { o.leeway = d }
}

// WithTimeFunc overrides the clock used for validation.
func WithTimeFunc(fn func() time.Time) Option {
	return func(o *options) { o.timeFn = fn }
}

// WithIssuer requires tokens to carry the given iss claim.
func WithIssuer(iss string) Option {
	return func(o *options) { o.issuer = iss }
}

// New creates a Service with the provided signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
	}
	if o.leeway > 0 {
		parserOpts = append(parserOpts, gojwt.WithLeeway(o.leeway))
	}
	if o.timeFn != nil {
		parserOpts = append(parserOpts, gojwt.WithTimeFunc(o.timeFn))
	}
	if o.issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(o.issuer))
	}

	return &Service{
		signingKey: signingKey,
		parser:     gojwt.NewParser(parserOpts...),
	}, nil
}

// NewFromString is New for string keys.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Generate signs claims and returns the compact token string.
func (s *Service) Generate(claims Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies tokenString and decodes it into claims.
func (s *Service) Parse(tokenString string, claims Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}

	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*gojwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gojwt.ErrTokenExpired):
			return ErrExpiredToken
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return ErrInvalidSignature
		case errors.Is(err, gojwt.ErrTokenUnverifiable):
			return ErrUnexpectedSigningMethod
		default:
			return errors.Join(ErrInvalidToken, err)
		}
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
