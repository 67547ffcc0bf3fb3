package poet

import "github.com/heartbeats/poet-go/internal/bindings"

// ControlState is one row of the controller's table: the speedup a
// configuration delivers relative to state 0 and the power cost of running in
// it. IDs must be contiguous from 0 in table order; the native controller
// indexes by ID.
type ControlState struct {
	ID      uint32
	Speedup float64
	Cost    float64
}

// CPUState is one platform configuration the apply callback can switch to.
// Freq is in kHz, matching Linux cpufreq.
type CPUState struct {
	ID    uint32
	Freq  uint64
	Cores uint32
}

// DefaultControlState mirrors the native default: the identity configuration
// with unit speedup and unit cost.
func DefaultControlState() ControlState {
	return ControlState{ID: 0, Speedup: 1.0, Cost: 1.0}
}

// DefaultCPUState mirrors the native default.
func DefaultCPUState() CPUState {
	return CPUState{ID: 0, Freq: 0, Cores: 0}
}

// ApplyFunc receives the controller's decision to move the platform from
// state lastID to state id. The slice is a private copy of the CPU state
// table. A nil ApplyFunc in Config selects the native apply_cpu_config, which
// writes Linux cpufreq sysfs directly.
type ApplyFunc func(states []CPUState, id, lastID uint32)

// CurrentStateFunc reports which table entry the platform currently runs in.
// A nil CurrentStateFunc in Config selects the native get_current_cpu_state.
type CurrentStateFunc func(states []CPUState) (uint32, error)

func toBindingsControl(in []ControlState) []bindings.ControlState {
	out := make([]bindings.ControlState, len(in))
	for i, s := range in {
		out[i] = bindings.ControlState{ID: s.ID, Speedup: s.Speedup, Cost: s.Cost}
	}
	return out
}

func toBindingsCPU(in []CPUState) []bindings.CPUState {
	out := make([]bindings.CPUState, len(in))
	for i, s := range in {
		out[i] = bindings.CPUState{ID: s.ID, Freq: s.Freq, Cores: s.Cores}
	}
	return out
}

func fromBindingsControl(in []bindings.ControlState) []ControlState {
	out := make([]ControlState, len(in))
	for i, s := range in {
		out[i] = ControlState{ID: s.ID, Speedup: s.Speedup, Cost: s.Cost}
	}
	return out
}

func fromBindingsCPU(in []bindings.CPUState) []CPUState {
	out := make([]CPUState, len(in))
	for i, s := range in {
		out[i] = CPUState{ID: s.ID, Freq: s.Freq, Cores: s.Cores}
	}
	return out
}
