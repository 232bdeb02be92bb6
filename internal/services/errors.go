package services

import "errors"

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrAccountNotFound     = errors.New("account not found")
)

// WeakPasswordError carries the first policy rule the password failed, so
// the caller can tell the user what to fix.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return e.Reason
}
