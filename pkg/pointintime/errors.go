package pointintime

import (
	"errors"
	"fmt"
)

var (
	ErrPointInTimeParse       = errors.New("point in time parse error")
	ErrInvalidTimestampFormat = fmt.Errorf("%w: invalid timestamp format", ErrPointInTimeParse)
	ErrFutureTimestamp        = fmt.Errorf("%w: timestamp is in the future", ErrPointInTimeParse)
	ErrMissingParent          = fmt.Errorf("%w: branch has no parent", ErrPointInTimeParse)
	ErrEmptyBranch            = fmt.Errorf("%w: missing branch name", ErrPointInTimeParse)
)

// ErrorKind discriminates the ways a point in time reference can be rejected.
type ErrorKind string

const (
	KindInvalidTimestampFormat ErrorKind = "invalid-timestamp-format"
	KindFutureTimestamp        ErrorKind = "future-timestamp"
	KindMissingParent          ErrorKind = "missing-parent"
	KindEmptyBranch            ErrorKind = "empty-branch"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidTimestampFormat:
		return ErrInvalidTimestampFormat
	case KindFutureTimestamp:
		return ErrFutureTimestamp
	case KindMissingParent:
		return ErrMissingParent
	case KindEmptyBranch:
		return ErrEmptyBranch
	default:
		return ErrPointInTimeParse
	}
}

// ParseError is returned for references that can never resolve. Value holds
// the offending part of the input: the qualifier, or the branch id for
// KindMissingParent.
type ParseError struct {
	Kind  ErrorKind
	Value string
}

func newParseError(kind ErrorKind, value string) *ParseError {
	return &ParseError{Kind: kind, Value: value}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind.sentinel(), e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}
