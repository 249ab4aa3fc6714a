// Package shared contains common domain types, errors, and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// Persistence errors
	ErrStorage = errors.New("storage operation failed")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
	ErrRateLimited        = errors.New("rate limited")

	// Authorization errors
	ErrPermission = errors.New("permission denied")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "progression", "movie", "discord"
	Op      string // Operation that failed, e.g., "RecordActivity", "AddRole"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Progression domain errors
var (
	ErrProgressNotFound = NewDomainError("progression", "Get", ErrNotFound, "no progress recorded for user")
	ErrInvalidUserID    = NewDomainError("progression", "Validate", ErrInvalidID, "invalid user ID")
	ErrInvalidGuildID   = NewDomainError("progression", "Validate", ErrInvalidID, "invalid guild ID")
)

// Movie domain errors
var (
	ErrRecommendationNotFound = NewDomainError("movie", "Find", ErrNotFound, "recommendation not found")
	ErrInvalidRating          = NewDomainError("movie", "Rate", ErrValueOutOfRange, "rating must be between 1 and 10")
	ErrWatchPartyNotFound     = NewDomainError("movie", "FindWatchParty", ErrNotFound, "watch party not found")
	ErrWatchPartyInPast       = NewDomainError("movie", "Schedule", ErrInvalidInput, "watch party must be in the future")
	ErrMovieAlreadyUsed       = NewDomainError("movie", "ChainMove", ErrAlreadyExists, "movie already used in this chain")
	ErrChainLetterMismatch    = NewDomainError("movie", "ChainMove", ErrInvalidInput, "movie does not start with the required letter")
)

// External service errors
var (
	ErrDiscordPermission = NewDomainError("discord", "Request", ErrPermission, "bot lacks required permissions")
	ErrDiscordNotFound   = NewDomainError("discord", "Request", ErrNotFound, "Discord entity not found")
	ErrDiscordFailed     = NewDomainError("discord", "Request", ErrExternalService, "Discord API request failed")
	ErrTMDBUnavailable   = NewDomainError("tmdb", "Request", ErrServiceUnavailable, "TMDB API is unavailable")
	ErrTMDBInvalid       = NewDomainError("tmdb", "Parse", ErrExternalService, "invalid response from TMDB API")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsStorage checks if the error is a persistence failure.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsPermission checks if the error is a permission failure that an operator
// must remediate (the bot's role is missing rights).
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsExternalService checks if the error is from an external service.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited)
}

// IsTransient checks if the error is a failure that may clear on its own:
// the service was unavailable, the call timed out, or the caller was rate
// limited. Auth failures, bad requests and malformed responses are not
// transient and must not be retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited)
}
