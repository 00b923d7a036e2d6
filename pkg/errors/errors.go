package errors

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("resource already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("resource not found")
	ErrInternal        = errors.New("internal server error")
)

// Token verification failures. All of them map to 401, but callers need to
// tell them apart (an expired access token clears the cookie, a malformed
// one is worth logging).
var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("token signature mismatch")
	ErrTokenMalformed   = errors.New("malformed token")
)

// Status maps a taxonomy error to its HTTP status code. Unknown errors map
// to 500 so lower-layer failures never leak through a more specific status.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrTokenMalformed):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Is re-exports errors.Is so feature packages don't need both imports.
func Is(err, target error) bool { return errors.Is(err, target) }
