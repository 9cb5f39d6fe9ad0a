package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// Configuration Errors. These indicate a caller bug and are never
	// retried.

	// ErrInvalidScope indicates an unknown search scope.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrInvalidBackend indicates an unknown backend name.
	ErrInvalidBackend = errors.New("invalid backend")

	// ErrInvalidFilter indicates a malformed filter value.
	ErrInvalidFilter = errors.New("invalid filter")

	// Authentication Errors.

	// ErrAuthRequired indicates no valid session is available.
	// Searches cannot run until the user logs in.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the stored session has expired.
	ErrAuthExpired = errors.New("authentication expired")

	// Selection Errors.

	// ErrNoBackend indicates no registered backend applies to the request.
	ErrNoBackend = errors.New("no applicable backend")

	// Execution Errors.

	// ErrBackendTimeout indicates a backend call exceeded its deadline.
	// The call may be retried by the caller; the engine never retries
	// it automatically.
	ErrBackendTimeout = errors.New("backend timeout")
)
