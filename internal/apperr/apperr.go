package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrConfiguration is returned when the token or repository is missing or invalid.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnauthorized is returned when GitLab answers 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when GitLab answers 404 or a local resource is unknown.
	ErrNotFound = errors.New("not found")

	// ErrTransient is returned for any other transport or HTTP failure.
	ErrTransient = errors.New("transient error")
)

// Kind is the boundary-level classification of a failure.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

// Classify maps any error onto the three kinds the HTTP layer distinguishes.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// HTTPStatus returns the response status for a kind.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
