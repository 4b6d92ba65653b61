package mp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds returned by the engine. Match them with errors.Is.
var (
	ErrCapacityExceeded   = errors.New("output capacity exceeded")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrNotInvertible      = errors.New("value is not invertible")
	ErrNotAResidue        = errors.New("value is not a quadratic residue")
	ErrMalformedInput     = errors.New("malformed input")
	ErrRetryBoundExceeded = errors.New("retry bound exceeded")

	// ErrOverlap is returned when an output buffer shares storage with an input.
	ErrOverlap = errors.New("output overlaps input")
	// ErrNegativeResult is returned by unsigned subtraction when b > a.
	ErrNegativeResult = errors.New("unsigned result would be negative")
	// ErrDivStepOverflow is returned when the high dividend digit is not below the divisor.
	ErrDivStepOverflow = errors.New("quotient does not fit in one digit")
)

// Error attributes a failure to the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mp: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind for op. Contract violations
// panic instead when the module is built with the mpdebug tag.
func Errorf(kind error, op string, format string, args ...interface{}) error {
	err := &Error{Op: op, Err: errors.Wrapf(kind, format, args...)}
	if debugAssertions && IsContract(kind) {
		panic(err)
	}
	return err
}

// NewError builds an *Error of the given kind without extra detail.
func NewError(kind error, op string) error {
	err := &Error{Op: op, Err: errors.WithStack(kind)}
	if debugAssertions && IsContract(kind) {
		panic(err)
	}
	return err
}

// IsContract reports whether err signals a caller bug rather than an
// expected runtime outcome.
func IsContract(err error) bool {
	switch {
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrDivisionByZero),
		errors.Is(err, ErrOverlap),
		errors.Is(err, ErrNegativeResult),
		errors.Is(err, ErrDivStepOverflow):
		return true
	}
	return false
}
