package syncore

import "fmt"

// Kind classifies the failure reported by an *Error. Callers that need to
// distinguish failure modes should compare against these values with
// errors.Is, rather than inspecting the formatted message.
type Kind int

const (
	// Synchronization covers generic failures raised by the synchronization
	// primitives that do not fit one of the more specific kinds below.
	Synchronization Kind = iota
	// Interrupted means a blocked operation was interrupted before it could
	// complete.
	Interrupted
	// Timeout means a bounded wait elapsed before the operation completed.
	Timeout
	// Canceled means the object the caller was waiting on was canceled.
	Canceled
	// InvalidOp means the calling goroutine attempted to perform an
	// operation it was not entitled to (e.g. releasing a lock it does not
	// hold).
	InvalidOp
	// Initialization means a primitive was constructed with invalid
	// parameters.
	Initialization
	// Deadlock means an operation was refused because it would have caused
	// the calling goroutine to deadlock against itself.
	Deadlock
)

func (k Kind) String() string {
	switch k {
	case Synchronization:
		return "synchronization"
	case Interrupted:
		return "interrupted"
	case Timeout:
		return "timeout"
	case Canceled:
		return "canceled"
	case InvalidOp:
		return "invalid operation"
	case Initialization:
		return "initialization"
	case Deadlock:
		return "deadlock"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the blocking operations in this
// package. It carries a Kind so callers can branch on failure category with
// errors.Is against the sentinel values below, and an optional wrapped
// cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, ErrTimeout) works regardless of Message or Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Cause == nil
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinel values usable with errors.Is(err, syncore.ErrTimeout) and
// friends. They carry no message or cause, matching any *Error of the same
// Kind.
var (
	ErrInterrupted    = &Error{Kind: Interrupted}
	ErrTimeout        = &Error{Kind: Timeout}
	ErrCanceled       = &Error{Kind: Canceled}
	ErrInvalidOp      = &Error{Kind: InvalidOp}
	ErrInitialization = &Error{Kind: Initialization}
	ErrDeadlock       = &Error{Kind: Deadlock}
)
