package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"logentry/internal/entry"
)

// Credential names the client certificate a pathway submits with. The zero
// value is the configured default.
type Credential struct {
	Path string
}

// IsDefault reports whether the configured default certificate applies.
func (c Credential) IsDefault() bool { return c.Path == "" }

// Transport delivers entries. Submit may defer to a queue and return 0;
// SubmitNow must either save immediately or fail.
type Transport interface {
	Submit(ctx context.Context, req *entry.Request, cred Credential) (int64, error)
	SubmitNow(ctx context.Context, req *entry.Request, cred Credential) (int64, error)
}

// Pathway is one of the four submission routes.
type Pathway int

const (
	DefaultQueued Pathway = iota
	DefaultImmediate
	AlternateQueued
	AlternateImmediate
)

func (p Pathway) String() string {
	switch p {
	case DefaultQueued:
		return "default-credential/queue-allowed"
	case DefaultImmediate:
		return "default-credential/immediate-only"
	case AlternateQueued:
		return "alternate-credential/queue-allowed"
	case AlternateImmediate:
		return "alternate-credential/immediate-only"
	default:
		return fmt.Sprintf("pathway(%d)", int(p))
	}
}

// AllowsQueue reports whether the pathway may defer the entry.
func (p Pathway) AllowsQueue() bool {
	return p == DefaultQueued || p == AlternateQueued
}

// UsesAlternate reports whether the pathway submits with the request's own
// certificate.
func (p Pathway) UsesAlternate() bool {
	return p == AlternateQueued || p == AlternateImmediate
}

// SelectPathway maps the two switches onto a pathway.
func SelectPathway(hasAlternateCredential, noQueue bool) Pathway {
	switch {
	case !hasAlternateCredential && !noQueue:
		return DefaultQueued
	case !hasAlternateCredential && noQueue:
		return DefaultImmediate
	case hasAlternateCredential && !noQueue:
		return AlternateQueued
	default:
		return AlternateImmediate
	}
}

// Mode describes how the server took the entry.
type Mode int

const (
	Immediate Mode = iota
	Queued
)

func (m Mode) String() string {
	if m == Queued {
		return "queued"
	}
	return "immediate"
}

// Outcome is the interpreted result of a successful submission. Number is
// the assigned lognumber for Immediate outcomes and 0 for Queued ones.
type Outcome struct {
	Mode   Mode
	Number int64
}

// Message is the line printed for the outcome.
func (o Outcome) Message() string {
	if o.Mode == Queued {
		return "The Entry was placed in the entry queue"
	}
	return fmt.Sprintf("The Entry was saved with lognumber %d", o.Number)
}

// ErrNegativeResult is wrapped when a transport answers with a code below 0.
var ErrNegativeResult = errors.New("transport returned a negative result code")

// Dispatcher routes a request to its pathway. It performs no retries.
type Dispatcher struct {
	Transport Transport
	Logger    *slog.Logger
}

// Dispatch selects the pathway for req and noQueue, calls the transport
// once, and interprets the result.
func (d *Dispatcher) Dispatch(ctx context.Context, req *entry.Request, noQueue bool) (Outcome, error) {
	if d == nil || d.Transport == nil {
		return Outcome{}, &SubmissionError{Op: "dispatch", Err: errors.New("no transport configured")}
	}
	if req == nil {
		return Outcome{}, &SubmissionError{Op: "dispatch", Err: errors.New("nil request")}
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pathway := SelectPathway(req.HasAlternateCredential(), noQueue)
	cred := Credential{}
	if pathway.UsesAlternate() {
		cred.Path = req.CredentialPath
	}
	logger.Debug("dispatching entry", slog.String("pathway", pathway.String()))

	var (
		result int64
		err    error
	)
	if pathway.AllowsQueue() {
		result, err = d.Transport.Submit(ctx, req, cred)
	} else {
		result, err = d.Transport.SubmitNow(ctx, req, cred)
	}
	if err != nil {
		return Outcome{}, &SubmissionError{Op: "submit", Pathway: pathway, Err: err}
	}
	return interpret(pathway, result)
}

func interpret(pathway Pathway, result int64) (Outcome, error) {
	switch {
	case result > 0:
		return Outcome{Mode: Immediate, Number: result}, nil
	case result == 0:
		return Outcome{Mode: Queued}, nil
	default:
		return Outcome{}, &SubmissionError{
			Op:      "submit",
			Pathway: pathway,
			Err:     fmt.Errorf("%w: %d", ErrNegativeResult, result),
		}
	}
}
