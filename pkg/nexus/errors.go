package nexus

import (
	"errors"
	"fmt"
)

// Sentinel errors for propagation.
var (
	// ErrNilContext indicates Emit was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrMaxFacts indicates the observed-fact guard was exceeded.
	ErrMaxFacts = errors.New("exceeded maximum observed facts")
)

// PrehensionError wraps an error returned by a form during propagation.
// The run aborts at the first such error; facts observed before the
// failure are returned alongside it.
type PrehensionError struct {
	// Occasion is the name of the occasion whose form failed.
	Occasion string
	// Datum is the fact being prehended when the failure occurred.
	Datum Datum
	// Err is the underlying error from the form.
	Err error
}

// Error implements the error interface.
func (e *PrehensionError) Error() string {
	return fmt.Sprintf("occasion %s prehending %s: %v", e.Occasion, e.Datum.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PrehensionError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised by a selector or form.
// It includes the stack trace for debugging.
type PanicError struct {
	// Occasion is the name of the occasion that panicked.
	Occasion string
	// Datum is the fact being prehended at the point of panic.
	Datum Datum
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("occasion %s panicked prehending %s: %v", e.Occasion, e.Datum.Name, e.Value)
}

// CancellationError captures the point at which a run was cancelled.
// Facts observed before cancellation are returned alongside it.
type CancellationError struct {
	// Datum is the fact that was about to be observed.
	Datum Datum
	// Cause is the underlying cancellation cause
	// (context.Canceled or context.DeadlineExceeded).
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled before observing %s: %v", e.Datum.Name, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}

// MaxFactsError provides context when the WithMaxFacts guard trips.
type MaxFactsError struct {
	// Max is the configured limit.
	Max int
	// Datum is the fact that would have been observed next.
	Datum Datum
}

// Error implements the error interface.
func (e *MaxFactsError) Error() string {
	return fmt.Sprintf("exceeded maximum observed facts (%d) at %s", e.Max, e.Datum.Name)
}

// Unwrap returns ErrMaxFacts for errors.Is support.
func (e *MaxFactsError) Unwrap() error {
	return ErrMaxFacts
}
