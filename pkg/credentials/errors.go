package credentials

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDocument    = errors.New("invalid credential document")
	ErrFailedToReadFile   = errors.New("failed to read credential document")
)
