package poet

import (
	"errors"
	"fmt"

	"github.com/heartbeats/poet-go/internal/bindings"
)

var (
	// ErrConstructionFailed indicates the native constructor reported
	// non-success. No resource was allocated; there is nothing to release.
	ErrConstructionFailed = errors.New("poet: native construction failed")

	// ErrUseAfterRelease indicates an operation on a State whose native
	// handle has already been released. The native library was not called.
	ErrUseAfterRelease = errors.New("poet: use after release")

	// ErrInvalidArgument indicates a caller-supplied value failed a
	// precondition check before reaching the native call.
	ErrInvalidArgument = errors.New("poet: invalid argument")

	// ErrUnknownNative indicates a native status code outside the documented
	// range. The raw code is preserved in the error message.
	ErrUnknownNative = errors.New("poet: unknown native error")

	// ErrNativeFailure indicates a generic native failure, libpoet's
	// undifferentiated -1.
	ErrNativeFailure = errors.New("poet: native call failed")

	// ErrAllocFailed indicates the native side could not allocate memory.
	ErrAllocFailed = errors.New("poet: native allocation failed")

	// ErrInvalidState indicates the native library rejected the call in its
	// current state.
	ErrInvalidState = errors.New("poet: invalid native state")

	// ErrIO indicates a native-side file error.
	ErrIO = errors.New("poet: native i/o error")

	// ErrNotBuilt indicates the binary was built without the native
	// bindings (no cgo, or Windows).
	ErrNotBuilt = errors.New("poet: native bindings not built")
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("poet.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// mapStatus translates a native status code into the public taxonomy. The
// mapping is total: every int32 produces a defined outcome and the function
// never panics. Codes outside the documented range collapse to
// ErrUnknownNative with the raw code preserved.
func mapStatus(code int32) error {
	switch code {
	case bindings.StatusSuccess:
		return nil
	case bindings.StatusFailure:
		return ErrNativeFailure
	case bindings.StatusInvalidArgument:
		return ErrInvalidArgument
	case bindings.StatusAllocFailed:
		return ErrAllocFailed
	case bindings.StatusInvalidState:
		return ErrInvalidState
	case bindings.StatusIO:
		return ErrIO
	default:
		return fmt.Errorf("%w (status %d)", ErrUnknownNative, code)
	}
}

// remapError converts bindings-layer errors to public API errors. Everything
// the bindings package can return has a defined translation here; anything
// else passes through wrapped under op.
func remapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var ce *bindings.CodeError
	switch {
	case errors.As(err, &ce):
		err = mapStatus(ce.Code)
	case errors.Is(err, bindings.ErrNotBuilt):
		err = ErrNotBuilt
	case errors.Is(err, bindings.ErrInitFailed):
		err = ErrConstructionFailed
	case errors.Is(err, bindings.ErrBadHandle):
		err = ErrUseAfterRelease
	}
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// invalidf reports a precondition failure for op, keeping ErrInvalidArgument
// reachable through errors.Is.
func invalidf(op, format string, args ...any) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))}
}
