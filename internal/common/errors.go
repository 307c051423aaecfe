// Package common defines shared sentinel errors used across CampusAuth
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors. Wrapped with field detail at the call site, e.g.
	// fmt.Errorf("%w: email", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	// Registration errors.
	ErrDuplicateEmail = errors.New("email already registered")

	// Authentication errors. Both must map to the same external response so
	// callers cannot probe which emails are registered.
	ErrNotFoundForRole = errors.New("no account for this role")
	ErrInvalidPassword = errors.New("invalid password")

	// Infrastructure errors. The only class the caller may retry.
	ErrStoreUnavailable = errors.New("identity store unavailable")

	// Token errors (invalid or malformed token, expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
