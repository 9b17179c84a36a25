// Package rerr defines the small, closed error taxonomy surfaced at the
// core's boundaries: template compilation, render-program construction,
// mount, hydrate, and the scheduler's own re-entrancy guard.
package rerr

import "fmt"

// Kind names one of the error categories the core can report. The set is
// closed and stable within a release; callers should branch on Kind rather
// than on message text.
type Kind int

const (
	// MismatchedValues: dynamic values count does not match program slot count.
	MismatchedValues Kind = iota + 1
	// InvalidMarkup: template/render structure violation (unclosed tag, bad
	// close order, non-empty stacks at end).
	InvalidMarkup
	// StackUnderflow: close op without matching open.
	StackUnderflow
	// MissingNode: portal target resolution failed, or hydration ran out of children.
	MissingNode
	// UnexpectedNode: hydration found a node of the wrong kind.
	UnexpectedNode
	// HydrationMismatch: tag/hid/text/marker content did not match the program.
	HydrationMismatch
	// Reentrant: scheduler flush called while already flushing.
	Reentrant
	// AllocationFailed: an underlying allocator (or recovered host panic) refused.
	AllocationFailed
)

func (k Kind) String() string {
	switch k {
	case MismatchedValues:
		return "MismatchedValues"
	case InvalidMarkup:
		return "InvalidMarkup"
	case StackUnderflow:
		return "StackUnderflow"
	case MissingNode:
		return "MissingNode"
	case UnexpectedNode:
		return "UnexpectedNode"
	case HydrationMismatch:
		return "HydrationMismatch"
	case Reentrant:
		return "Reentrant"
	case AllocationFailed:
		return "AllocationFailed"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every core package for
// named-kind failures.
type Error struct {
	Kind    Kind
	Message string
	// Detail carries the offending value (a tag name, a hydration id, an
	// attribute name) for diagnostics; optional.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ripple: %s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("ripple: %s: %s", e.Kind, e.Message)
}

// Is supports errors.Is(err, rerr.ErrMismatchedValues)-style checks by
// comparing Kind against a target *Error carrying only a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" || t.Detail != "" {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an *Error of the given kind with a Detail value.
func Newf(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// sentinel returns a comparison target for errors.Is — a bare *Error
// carrying only Kind, matched structurally by (*Error).Is.
func sentinel(k Kind) *Error { return &Error{Kind: k} }

var (
	ErrMismatchedValues  = sentinel(MismatchedValues)
	ErrInvalidMarkup     = sentinel(InvalidMarkup)
	ErrStackUnderflow    = sentinel(StackUnderflow)
	ErrMissingNode       = sentinel(MissingNode)
	ErrUnexpectedNode    = sentinel(UnexpectedNode)
	ErrHydrationMismatch = sentinel(HydrationMismatch)
	ErrReentrant         = sentinel(Reentrant)
	ErrAllocationFailed  = sentinel(AllocationFailed)
)
