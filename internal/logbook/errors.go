package logbook

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks delivery failures that may succeed later: network
// errors, timeouts, and 5xx answers. Only these are deferred to the queue.
var ErrUnavailable = errors.New("logbook server unavailable")

// ErrQueueUnavailable is returned when an entry should be deferred but no
// queue store is configured.
var ErrQueueUnavailable = errors.New("entry queue unavailable")

// RejectedError reports a server that received the entry and refused it.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("logbook server rejected entry (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("logbook server rejected entry (HTTP %d): %s", e.Status, e.Message)
}

// CredentialError reports a client certificate that cannot be used.
type CredentialError struct {
	Path string
	Err  error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("client certificate %s: %v", e.Path, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}
