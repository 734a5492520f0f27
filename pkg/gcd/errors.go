package gcd

import (
	"errors"
	"fmt"

	"github.com/coinbase/cb-gcd-go/internal/bindings"
)

var (
	// ErrDomain indicates an argument outside the domain of an operation,
	// such as the bit length of a non-positive value or a window whose first
	// operand is smaller than its second.
	ErrDomain = errors.New("gcd: argument out of domain")

	// ErrInternal indicates that a consistency check on an intermediate
	// result failed. It always signals a defect, never bad input.
	ErrInternal = errors.New("gcd: internal consistency check failed")

	// ErrInvalidConfig indicates a Config that cannot drive the engine.
	ErrInvalidConfig = errors.New("gcd: invalid config")

	// ErrKernelUnavailable indicates that the native word kernel was
	// requested but cannot be used by this binary or CPU.
	ErrKernelUnavailable = errors.New("gcd: native kernel unavailable")

	// ErrNotBuilt reports that the native kernel was not linked in.
	ErrNotBuilt = bindings.ErrNotBuilt

	// ErrCGONotEnabled reports that the binary was built without cgo.
	ErrCGONotEnabled = bindings.ErrCGONotEnabled

	// ErrUnsupportedCPU reports that the running CPU lacks instructions the
	// native kernel was compiled for.
	ErrUnsupportedCPU = bindings.ErrUnsupportedCPU
)

// InternalError wraps a failed consistency check with the stage that
// detected it. errors.Is(err, ErrInternal) holds for every InternalError.
type InternalError struct {
	Op  string // Stage that failed
	Err error  // Underlying error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("gcd.%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// internalf creates a new InternalError
func internalf(op string, format string, args ...interface{}) error {
	return &InternalError{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}

// RemapError converts bindings layer errors to public API errors. The
// bindings error stays in the chain so callers can still match the concrete
// reason.
func RemapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, bindings.ErrNotBuilt),
		errors.Is(err, bindings.ErrCGONotEnabled),
		errors.Is(err, bindings.ErrUnsupportedCPU),
		errors.Is(err, bindings.ErrSelfTest):
		return fmt.Errorf("%w: %w", ErrKernelUnavailable, err)
	}
	return err
}
