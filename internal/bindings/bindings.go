//go:build cgo && !windows

package bindings

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lpoet -lm
#include <stdlib.h>
#include <poet.h>
#include <poet_config.h>

extern void poetgo_apply(void* states, unsigned int num_states, unsigned int id, unsigned int last_id);
extern int poetgo_current(void* states, unsigned int num_states, unsigned int* curr_state_id);

static poet_apply_func poetgo_apply_fp(void) {
	return (poet_apply_func) poetgo_apply;
}

static poet_curr_state_func poetgo_current_fp(void) {
	return (poet_curr_state_func) poetgo_current;
}

static poet_apply_func poet_default_apply_fp(void) {
	return (poet_apply_func) apply_cpu_config;
}

static poet_curr_state_func poet_default_current_fp(void) {
	return (poet_curr_state_func) get_current_cpu_state;
}
*/
import "C"

import (
	"unsafe"
)

// Built reports whether the native bindings are linked into this binary.
func Built() bool { return true }

// Version returns the version string reported by the native library. libpoet
// exports no version symbol, so this is always empty for now.
func Version() string { return "" }

// Init allocates the C-side state tables, wires callbacks, and calls
// poet_init. On success it returns a Handle owning the poet_state and the C
// memory it borrows; on failure nothing stays allocated.
func Init(cfg InitConfig) (Handle, error) {
	n := len(cfg.ControlStates)

	ctl := C.malloc(C.size_t(n) * C.sizeof_poet_control_state_t)
	if ctl == nil {
		return 0, &CodeError{Op: "poet_init", Code: StatusAllocFailed}
	}
	cpus := C.malloc(C.size_t(n) * C.sizeof_poet_cpu_state_t)
	if cpus == nil {
		C.free(ctl)
		return 0, &CodeError{Op: "poet_init", Code: StatusAllocFailed}
	}

	ctlArr := unsafe.Slice((*C.poet_control_state_t)(ctl), n)
	for i, s := range cfg.ControlStates {
		ctlArr[i].id = C.uint(s.ID)
		ctlArr[i].speedup = C.double(s.Speedup)
		ctlArr[i].cost = C.double(s.Cost)
	}
	cpuArr := unsafe.Slice((*C.poet_cpu_state_t)(cpus), n)
	for i, s := range cfg.CPUStates {
		cpuArr[i].id = C.uint(s.ID)
		cpuArr[i].freq = C.ulong(s.Freq)
		cpuArr[i].cores = C.uint(s.Cores)
	}

	apply := C.poet_default_apply_fp()
	current := C.poet_default_current_fp()
	if cfg.Apply != nil {
		apply = C.poetgo_apply_fp()
	}
	if cfg.Current != nil {
		current = C.poetgo_current_fp()
	}

	var logName *C.char
	if cfg.LogFile != "" {
		logName = C.CString(cfg.LogFile)
		defer C.free(unsafe.Pointer(logName))
	}

	r := &record{
		ctl:     ctl,
		cpus:    cpus,
		n:       uint32(n),
		apply:   cfg.Apply,
		current: cfg.Current,
		states:  append([]CPUState(nil), cfg.CPUStates...),
	}
	// Registered before poet_init: the native defaults never call back, and
	// the trampolines need the record in place before the first period fires.
	h := put(r)

	st := C.poet_init(C.double(cfg.PerfGoal), C.uint(n),
		(*C.poet_control_state_t)(ctl), cpus,
		apply, current,
		C.uint(cfg.Period), C.uint(cfg.BufferDepth), logName)
	if st == nil {
		del(h)
		C.free(ctl)
		C.free(cpus)
		return 0, ErrInitFailed
	}
	r.st = st
	return h, nil
}

// ApplyControl records one observation window with poet_apply_control.
func ApplyControl(h Handle, tag uint64, windowRate, windowPower float64) error {
	r, ok := get(h)
	if !ok {
		return ErrBadHandle
	}
	C.poet_apply_control(r.st, C.ulong(tag), C.double(windowRate), C.double(windowPower))
	return nil
}

// SetPerformanceGoal retargets a live controller.
func SetPerformanceGoal(h Handle, perfGoal float64) error {
	r, ok := get(h)
	if !ok {
		return ErrBadHandle
	}
	C.poet_set_performance_goal(r.st, C.double(perfGoal))
	return nil
}

// Destroy releases the poet_state and the C memory it borrows. The handle is
// invalid afterwards; destroying an unknown handle reports ErrBadHandle and
// touches nothing.
func Destroy(h Handle) error {
	r, ok := del(h)
	if !ok {
		return ErrBadHandle
	}
	C.poet_destroy(r.st)
	C.free(r.ctl)
	C.free(r.cpus)
	return nil
}

// GetControlStates calls the native loader for the classic text format and
// copies the result into Go memory, freeing the C allocation before returning.
// An empty path selects the loader's built-in default table.
func GetControlStates(path string) ([]ControlState, error) {
	var cPath *C.char
	if path != "" {
		cPath = C.CString(path)
		defer C.free(unsafe.Pointer(cPath))
	}

	var states *C.poet_control_state_t
	var n C.uint
	if rc := C.get_control_states(cPath, &states, &n); rc != 0 {
		return nil, &CodeError{Op: "get_control_states", Code: StatusFailure}
	}
	defer C.free(unsafe.Pointer(states))

	src := unsafe.Slice(states, int(n))
	out := make([]ControlState, int(n))
	for i := range src {
		out[i] = ControlState{
			ID:      uint32(src[i].id),
			Speedup: float64(src[i].speedup),
			Cost:    float64(src[i].cost),
		}
	}
	return out, nil
}

// GetCPUStates is the CPU-table counterpart of GetControlStates.
func GetCPUStates(path string) ([]CPUState, error) {
	var cPath *C.char
	if path != "" {
		cPath = C.CString(path)
		defer C.free(unsafe.Pointer(cPath))
	}

	var states *C.poet_cpu_state_t
	var n C.uint
	if rc := C.get_cpu_states(cPath, &states, &n); rc != 0 {
		return nil, &CodeError{Op: "get_cpu_states", Code: StatusFailure}
	}
	defer C.free(unsafe.Pointer(states))

	src := unsafe.Slice(states, int(n))
	out := make([]CPUState, int(n))
	for i := range src {
		out[i] = CPUState{
			ID:    uint32(src[i].id),
			Freq:  uint64(src[i].freq),
			Cores: uint32(src[i].cores),
		}
	}
	return out, nil
}
