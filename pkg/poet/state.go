package poet

import (
	"context"
	"math"
	"sync"

	"github.com/heartbeats/poet-go/internal/bindings"
	"github.com/heartbeats/poet-go/pkg/poet/logging"
)

// nativeRuntime is the seam between State and the raw bindings. Production
// code always uses bindingsRuntime; tests substitute a fake so handle
// lifecycle properties can be checked without the native library.
type nativeRuntime interface {
	init(cfg bindings.InitConfig) (bindings.Handle, error)
	applyControl(h bindings.Handle, tag uint64, windowRate, windowPower float64) error
	setPerformanceGoal(h bindings.Handle, perfGoal float64) error
	destroy(h bindings.Handle) error
}

type bindingsRuntime struct{}

func (bindingsRuntime) init(cfg bindings.InitConfig) (bindings.Handle, error) {
	return bindings.Init(cfg)
}

func (bindingsRuntime) applyControl(h bindings.Handle, tag uint64, rate, power float64) error {
	return bindings.ApplyControl(h, tag, rate, power)
}

func (bindingsRuntime) setPerformanceGoal(h bindings.Handle, goal float64) error {
	return bindings.SetPerformanceGoal(h, goal)
}

func (bindingsRuntime) destroy(h bindings.Handle) error {
	return bindings.Destroy(h)
}

// State owns exactly one native poet_state for its entire lifetime.
//
// The type is move-only: it embeds a mutex, so copying is rejected by go
// vet's copylocks check. Methods serialize on that mutex; libpoet is not
// thread-safe on a shared controller, and State deliberately offers no
// shared-ownership mode.
type State struct {
	mu     sync.Mutex
	rt     nativeRuntime
	handle bindings.Handle
	closed bool

	perfGoal float64
	control  []ControlState
	cpu      []CPUState
	period   uint32
	depth    uint32

	log logging.Logger
	obs Observer
}

// Open validates cfg, constructs a native controller, and returns a State
// owning it. If the native constructor reports failure no wrapper is created
// and no resource stays allocated; the caller receives ErrConstructionFailed
// (or ErrNotBuilt without the native library).
func Open(cfg Config) (*State, error) {
	return open(bindingsRuntime{}, cfg)
}

func open(rt nativeRuntime, cfg Config) (*State, error) {
	const op = "Open"

	if err := cfg.validate(op); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logging.New(nil)
	}
	obs := cfg.Observer
	if obs == nil {
		obs = noopObserver{}
	}

	bcfg := bindings.InitConfig{
		PerfGoal:      cfg.PerformanceGoal,
		ControlStates: toBindingsControl(cfg.ControlStates),
		CPUStates:     toBindingsCPU(cfg.CPUStates),
		Period:        cfg.Period,
		BufferDepth:   cfg.BufferDepth,
		LogFile:       cfg.LogFile,
	}
	if cfg.Apply != nil {
		apply := cfg.Apply
		bcfg.Apply = func(states []bindings.CPUState, id, lastID uint32) {
			apply(fromBindingsCPU(states), id, lastID)
		}
	}
	if cfg.CurrentState != nil {
		current := cfg.CurrentState
		bcfg.Current = func(states []bindings.CPUState) (uint32, error) {
			return current(fromBindingsCPU(states))
		}
	}

	h, err := rt.init(bcfg)
	if err != nil {
		obs.ObserveError(op)
		return nil, remapError(op, err)
	}

	s := &State{
		rt:       rt,
		handle:   h,
		perfGoal: cfg.PerformanceGoal,
		control:  append([]ControlState(nil), cfg.ControlStates...),
		cpu:      append([]CPUState(nil), cfg.CPUStates...),
		period:   cfg.Period,
		depth:    cfg.BufferDepth,
		log:      log,
		obs:      obs,
	}
	obs.ObserveGoal(cfg.PerformanceGoal)
	log.Debug(context.Background(), "poet controller opened",
		"states", len(cfg.ControlStates), "period", cfg.Period, "goal", cfg.PerformanceGoal)
	return s, nil
}

// ApplyControl records one observation window: tag identifies the window,
// windowRate is the observed heartbeat rate, windowPower the observed power
// draw. At period boundaries the native controller may invoke the apply
// callback to change the platform configuration.
func (s *State) ApplyControl(tag uint64, windowRate, windowPower float64) error {
	const op = "ApplyControl"

	if !(windowRate > 0) || math.IsInf(windowRate, 0) {
		return invalidf(op, "window rate %v must be positive and finite", windowRate)
	}
	if !(windowPower > 0) || math.IsInf(windowPower, 0) {
		return invalidf(op, "window power %v must be positive and finite", windowPower)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: op, Err: ErrUseAfterRelease}
	}
	if err := s.rt.applyControl(s.handle, tag, windowRate, windowPower); err != nil {
		s.obs.ObserveError(op)
		return remapError(op, err)
	}
	s.obs.ObserveApply(tag, windowRate, windowPower)
	return nil
}

// SetPerformanceGoal retargets the controller at runtime.
func (s *State) SetPerformanceGoal(perfGoal float64) error {
	const op = "SetPerformanceGoal"

	if !(perfGoal > 0) || math.IsInf(perfGoal, 0) {
		return invalidf(op, "performance goal %v must be positive and finite", perfGoal)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: op, Err: ErrUseAfterRelease}
	}
	if err := s.rt.setPerformanceGoal(s.handle, perfGoal); err != nil {
		s.obs.ObserveError(op)
		return remapError(op, err)
	}
	s.perfGoal = perfGoal
	s.obs.ObserveGoal(perfGoal)
	return nil
}

// Close releases the native controller. The first call invokes the native
// destructor exactly once; every later call is a no-op returning nil. Close
// on a nil State is also a no-op.
func (s *State) Close() error {
	const op = "Close"

	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	h := s.handle
	s.handle = 0
	if err := s.rt.destroy(h); err != nil {
		s.obs.ObserveError(op)
		return remapError(op, err)
	}
	s.log.Debug(context.Background(), "poet controller closed")
	return nil
}

// PerformanceGoal returns the goal the controller currently steers toward.
func (s *State) PerformanceGoal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perfGoal
}

// Period returns the configured observations-per-window count.
func (s *State) Period() uint32 { return s.period }

// BufferDepth returns the configured history buffer depth.
func (s *State) BufferDepth() uint32 { return s.depth }

// ControlStates returns a copy of the configured control table.
func (s *State) ControlStates() []ControlState {
	return append([]ControlState(nil), s.control...)
}

// CPUStates returns a copy of the configured CPU table.
func (s *State) CPUStates() []CPUState {
	return append([]CPUState(nil), s.cpu...)
}
