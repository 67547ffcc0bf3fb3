package bindings

import (
	"errors"
	"fmt"
)

// Handle is an opaque identifier for a live native poet_state. The zero value
// is never a valid handle.
type Handle uintptr

// ControlState mirrors poet_control_state_t: one row of the controller's
// speedup/cost table. IDs must be contiguous from 0 in table order.
type ControlState struct {
	ID      uint32
	Speedup float64
	Cost    float64
}

// CPUState mirrors poet_cpu_state_t: one platform configuration the apply
// callback can switch to. Freq is in kHz, matching cpufreq.
type CPUState struct {
	ID    uint32
	Freq  uint64
	Cores uint32
}

// ApplyFunc is the Go-side equivalent of poet_apply_func. The controller calls
// it when it decides the platform should move from state lastID to state id.
// The slice is a copy of the CPU state table; mutating it has no effect on the
// native side.
type ApplyFunc func(states []CPUState, id, lastID uint32)

// CurrentStateFunc is the Go-side equivalent of poet_curr_state_func. It
// reports which entry of the CPU state table the platform is currently in.
type CurrentStateFunc func(states []CPUState) (uint32, error)

// InitConfig carries everything poet_init needs. Leaving Apply or Current nil
// selects the native default callbacks (apply_cpu_config and
// get_current_cpu_state) that drive Linux cpufreq directly.
type InitConfig struct {
	PerfGoal      float64
	ControlStates []ControlState
	CPUStates     []CPUState
	Apply         ApplyFunc
	Current       CurrentStateFunc
	Period        uint32
	BufferDepth   uint32
	LogFile       string
}

// Native status codes. libpoet's config loaders report failure as a bare -1;
// the cgo layer normalizes that to StatusFailure so the documented range below
// is the only one callers ever see from this package.
const (
	StatusSuccess         = 0
	StatusFailure         = 1
	StatusInvalidArgument = 2
	StatusAllocFailed     = 3
	StatusInvalidState    = 4
	StatusIO              = 5
)

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary. Downstream callers use this to fall back to safer
	// defaults instead of treating it as a native failure.
	ErrNotBuilt = errors.New("poet/internal/bindings: native bindings not built")

	// ErrInitFailed reports that poet_init returned NULL. No native resource
	// was allocated.
	ErrInitFailed = errors.New("poet/internal/bindings: poet_init failed")

	// ErrBadHandle reports an operation on a handle this package does not
	// know, which means it was never created here or was already destroyed.
	ErrBadHandle = errors.New("poet/internal/bindings: unknown handle")
)

// CodeError carries a native status code across the bindings boundary so the
// public error mapper can translate it. It is the only form in which a status
// code leaves this package.
type CodeError struct {
	Op   string
	Code int32
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("poet/internal/bindings: %s: native status %d", e.Op, e.Code)
}
