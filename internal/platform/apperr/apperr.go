// Package apperr define la taxonomía de errores compartida por dominio, storage y handlers.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnavailable     = errors.New("service unavailable")
)

// StatusCode traduce un error del dominio a código HTTP.
// Cualquier error desconocido es 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Unavailable envuelve una falla del store como ErrUnavailable.
// nil queda nil y los errores que ya pertenecen a la taxonomía no se re-envuelven.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	if Known(err) {
		return err
	}
	return &storeError{cause: err}
}

// Known indica si err ya pertenece a la taxonomía.
func Known(err error) bool {
	for _, k := range []error{ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnavailable} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

type storeError struct {
	cause error
}

func (e *storeError) Error() string {
	return ErrUnavailable.Error() + ": " + e.cause.Error()
}

func (e *storeError) Is(target error) bool { return target == ErrUnavailable }

func (e *storeError) Unwrap() error { return e.cause }
