package fetch

import (
	"errors"
	"fmt"
)

var (
	ErrAttemptsExhausted = errors.New("attempts exhausted")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	// ErrRedirectNotAllowed is returned for redirects leaving the site,
	// they are never retried.
	ErrRedirectNotAllowed = errors.New("redirect not allowed")
)

// FetchError is returned when a url could not be retrieved. Status is the
// last http status seen, 0 when the last attempt failed at the network level.
type FetchError struct {
	Url      string
	Attempts int
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("fetch %s: after %d attempt(s): %v", e.Url, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch %s: after %d attempt(s), status %d: %v", e.Url, e.Attempts, e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
