// Package server provides the HTTP REST API for the resume vault.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-vault/internal/profile"
	"github.com/jonathan/resume-vault/internal/rendering"
	"github.com/jonathan/resume-vault/internal/store"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrAuthNotConfigured indicates the server has no password hash configured
type ErrAuthNotConfigured struct{}

func (e *ErrAuthNotConfigured) Error() string {
	return "authentication is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidCreds  *ErrInvalidCredentials
		noAuth        *ErrAuthNotConfigured
		notFound      *store.NotFoundError
		invalidResume *profile.InvalidResumeError
		invalidKey    *profile.InvalidDraftKeyError
		badFormat     *rendering.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &noAuth):
		return http.StatusServiceUnavailable
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidResume), errors.As(err, &invalidKey), errors.As(err, &badFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
