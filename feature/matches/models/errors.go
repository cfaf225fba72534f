package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned by detail lookups on unknown matches or players.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey marks an insert that lost to a row with the same key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// FetchErrorKind classifies remote failures.
type FetchErrorKind string

const (
	KindAuth        FetchErrorKind = "auth"
	KindRateLimit   FetchErrorKind = "rate_limit"
	KindNotFound    FetchErrorKind = "not_found"
	KindTimeout     FetchErrorKind = "timeout"
	KindUnavailable FetchErrorKind = "unavailable"
	KindBadResponse FetchErrorKind = "bad_response"
)

// RemoteFetchError is a failed call to the match history provider.
type RemoteFetchError struct {
	Kind   FetchErrorKind
	Status int
	// RetryAfter is the provider's backoff hint, zero when absent.
	RetryAfter time.Duration
	Err        error
}

func (e *RemoteFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote fetch failed (%s, status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("remote fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// RetryAfterHint returns the provider's backoff hint.
func (e *RemoteFetchError) RetryAfterHint() time.Duration { return e.RetryAfter }

// Transient reports whether repeating the call later may succeed.
func (e *RemoteFetchError) Transient() bool {
	switch e.Kind {
	case KindRateLimit, KindTimeout, KindUnavailable:
		return true
	default:
		return false
	}
}

// NormalizationError marks a remote record that is missing a required field.
type NormalizationError struct {
	MatchID string
	Field   string
}

func (e *NormalizationError) Error() string {
	if e.MatchID == "" {
		return fmt.Sprintf("malformed match record: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed match record %s: missing %s", e.MatchID, e.Field)
}

// IsRetryable reports whether err wraps a transient remote failure.
func IsRetryable(err error) bool {
	var rfe *RemoteFetchError
	return errors.As(err, &rfe) && rfe.Transient()
}

// IsNormalization reports whether err wraps a NormalizationError.
func IsNormalization(err error) bool {
	var ne *NormalizationError
	return errors.As(err, &ne)
}
