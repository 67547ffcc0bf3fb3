//go:build cgo && !windows

package bindings

/*
#include <poet.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

// record tracks one live poet_state together with the C memory it borrows.
// The native controller keeps pointers into ctl and cpus for its whole
// lifetime, so both stay allocated until Destroy.
type record struct {
	st      *C.poet_state
	ctl     unsafe.Pointer // C array of poet_control_state_t
	cpus    unsafe.Pointer // C array of poet_cpu_state_t, also the callback key
	n       uint32
	apply   ApplyFunc
	current CurrentStateFunc
	states  []CPUState // Go copy handed to Go callbacks
}

var (
	mu      sync.Mutex
	next    Handle = 1
	reg            = map[Handle]*record{}
	byArray        = map[unsafe.Pointer]*record{}
)

func put(r *record) Handle {
	mu.Lock()
	h := next
	next++
	reg[h] = r
	if r.apply != nil || r.current != nil {
		byArray[r.cpus] = r
	}
	mu.Unlock()
	return h
}

func get(h Handle) (*record, bool) {
	mu.Lock()
	r, ok := reg[h]
	mu.Unlock()
	return r, ok
}

func del(h Handle) (*record, bool) {
	mu.Lock()
	r, ok := reg[h]
	if ok {
		delete(reg, h)
		delete(byArray, r.cpus)
	}
	mu.Unlock()
	return r, ok
}

func byStates(p unsafe.Pointer) (*record, bool) {
	mu.Lock()
	r, ok := byArray[p]
	mu.Unlock()
	return r, ok
}

// poetgo_apply is the trampoline libpoet invokes in place of apply_cpu_config
// when the caller supplied a Go ApplyFunc. The states pointer is the C CPU
// state array we allocated in Init, which doubles as the registry key because
// poet_apply_func carries no user-data argument.
//
//export poetgo_apply
func poetgo_apply(states unsafe.Pointer, numStates C.uint, id C.uint, lastID C.uint) {
	r, ok := byStates(states)
	if !ok || r.apply == nil {
		return
	}
	r.apply(append([]CPUState(nil), r.states...), uint32(id), uint32(lastID))
}

// poetgo_current is the trampoline for poet_curr_state_func. A lookup miss or
// a Go-side error is reported to the native controller as -1, which it treats
// as "current state unknown".
//
//export poetgo_current
func poetgo_current(states unsafe.Pointer, numStates C.uint, currStateID *C.uint) C.int {
	r, ok := byStates(states)
	if !ok || r.current == nil {
		return -1
	}
	id, err := r.current(append([]CPUState(nil), r.states...))
	if err != nil {
		return -1
	}
	*currStateID = C.uint(id)
	return 0
}
