package streamzip

import (
	"errors"
	"fmt"
)

// Kind classifies why an archive stream stopped producing bytes.
type Kind int

const (
	// KindAborted means an external abort signal fired or the consumer
	// canceled its context.
	KindAborted Kind = iota
	// KindMalformedInput means a caller-supplied item could not be
	// normalized, or its declared size disagreed with the bytes actually
	// drained from it.
	KindMalformedInput
	// KindSourceFailure means an entry's byte source returned an error
	// while being drained.
	KindSourceFailure
	// KindIteratorFailure means the item source returned an error other
	// than io.EOF from Next.
	KindIteratorFailure
)

func (k Kind) String() string {
	switch k {
	case KindAborted:
		return "aborted"
	case KindMalformedInput:
		return "malformed input"
	case KindSourceFailure:
		return "source failure"
	case KindIteratorFailure:
		return "iterator failure"
	default:
		return "unknown"
	}
}

// Error is the error type returned by Reader.Read and Reader.Entries once
// the stream has terminated abnormally. Use errors.As to recover it and
// inspect Kind, or errors.Is against ErrAborted.
type Error struct {
	Kind   Kind
	Reason error // the underlying cause; for an abort, context.Cause of the canceled context
}

func (e *Error) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("streamzip: %s: %v", e.Kind, e.Reason)
	}
	return fmt.Sprintf("streamzip: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Reason }

// Is makes errors.Is(err, ErrAborted) true for any *Error of KindAborted,
// regardless of Reason.
func (e *Error) Is(target error) bool {
	if target == ErrAborted {
		return e.Kind == KindAborted
	}
	return false
}

// ErrAborted is the sentinel matched by errors.Is against any abort error,
// whether it came from an external signal or a canceled context.
var ErrAborted = errors.New("streamzip: aborted")

func abortedErr(reason error) error {
	return &Error{Kind: KindAborted, Reason: reason}
}

func malformedInputErr(reason error) error {
	return &Error{Kind: KindMalformedInput, Reason: reason}
}

func sourceFailureErr(reason error) error {
	return &Error{Kind: KindSourceFailure, Reason: reason}
}

func iteratorFailureErr(reason error) error {
	return &Error{Kind: KindIteratorFailure, Reason: reason}
}
