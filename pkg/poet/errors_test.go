package poet

import (
	"errors"
	"math"
	"testing"

	"github.com/heartbeats/poet-go/internal/bindings"
)

func TestMapStatusDocumentedRange(t *testing.T) {
	tests := []struct {
		code int32
		want error
	}{
		{bindings.StatusSuccess, nil},
		{bindings.StatusFailure, ErrNativeFailure},
		{bindings.StatusInvalidArgument, ErrInvalidArgument},
		{bindings.StatusAllocFailed, ErrAllocFailed},
		{bindings.StatusInvalidState, ErrInvalidState},
		{bindings.StatusIO, ErrIO},
	}

	for _, tc := range tests {
		got := mapStatus(tc.code)
		if tc.want == nil {
			if got != nil {
				t.Fatalf("mapStatus(%d) = %v, want nil", tc.code, got)
			}
			continue
		}
		if !errors.Is(got, tc.want) {
			t.Fatalf("mapStatus(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

// The mapping must be total: any code outside the documented range collapses
// to ErrUnknownNative, never a panic or a silent nil.
func TestMapStatusTotal(t *testing.T) {
	outside := []int32{-1, -7, 6, 7, 42, 1000, math.MaxInt32, math.MinInt32}
	for _, code := range outside {
		got := mapStatus(code)
		if !errors.Is(got, ErrUnknownNative) {
			t.Fatalf("mapStatus(%d) = %v, want ErrUnknownNative", code, got)
		}
	}
}

func TestRemapError(t *testing.T) {
	if err := remapError("Op", nil); err != nil {
		t.Fatalf("remap nil: %v", err)
	}

	err := remapError("Open", bindings.ErrNotBuilt)
	if !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("got %v, want ErrNotBuilt", err)
	}

	err = remapError("Open", bindings.ErrInitFailed)
	if !errors.Is(err, ErrConstructionFailed) {
		t.Fatalf("got %v, want ErrConstructionFailed", err)
	}

	err = remapError("ApplyControl", bindings.ErrBadHandle)
	if !errors.Is(err, ErrUseAfterRelease) {
		t.Fatalf("got %v, want ErrUseAfterRelease", err)
	}

	err = remapError("Open", &bindings.CodeError{Op: "poet_init", Code: 7})
	if !errors.Is(err, ErrUnknownNative) {
		t.Fatalf("got %v, want ErrUnknownNative", err)
	}

	// Success codes remap to no error even when wrapped in a CodeError.
	if err := remapError("Op", &bindings.CodeError{Op: "x", Code: bindings.StatusSuccess}); err != nil {
		t.Fatalf("success code remapped to %v", err)
	}
}

func TestErrorWrapping(t *testing.T) {
	err := invalidf("Open", "bad value %d", 3)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("invalidf did not produce *Error: %T", err)
	}
	if e.Op != "Open" {
		t.Fatalf("op = %q, want Open", e.Op)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("errors.Is lost ErrInvalidArgument: %v", err)
	}
}
