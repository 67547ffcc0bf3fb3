package poet

import (
	"math"

	"github.com/heartbeats/poet-go/pkg/poet/logging"
)

// Config expresses everything Open needs to construct a native controller.
// ControlStates and CPUStates must be the same length with matching,
// contiguous IDs: row i of the control table describes the configuration that
// row i of the CPU table realizes.
type Config struct {
	// PerformanceGoal is the target heartbeat rate the controller steers
	// toward. Must be positive and finite.
	PerformanceGoal float64

	ControlStates []ControlState
	CPUStates     []CPUState

	// Period is the number of observations per control window. The
	// controller only re-plans at window boundaries.
	Period uint32

	// BufferDepth is the depth of the observation history buffer.
	BufferDepth uint32

	// LogFile, when non-empty, makes the native controller append one line
	// per window to this path.
	LogFile string

	// Apply and CurrentState override the native platform callbacks. Leave
	// nil to let libpoet drive Linux cpufreq directly.
	Apply        ApplyFunc
	CurrentState CurrentStateFunc

	// Logger receives wrapper-level events. Nil binds to slog.Default().
	Logger logging.Logger

	// Observer receives one callback per boundary crossing, for metrics.
	// Nil means no observation.
	Observer Observer
}

// validate checks every documented native precondition in Go, before any
// boundary crossing. All failures are ErrInvalidArgument.
func (c Config) validate(op string) error {
	if !(c.PerformanceGoal > 0) || math.IsInf(c.PerformanceGoal, 0) {
		return invalidf(op, "performance goal %v must be positive and finite", c.PerformanceGoal)
	}
	if c.Period == 0 {
		return invalidf(op, "period must be at least 1")
	}
	if c.BufferDepth == 0 {
		return invalidf(op, "buffer depth must be at least 1")
	}
	if len(c.ControlStates) == 0 {
		return invalidf(op, "control state table is empty")
	}
	if len(c.ControlStates) != len(c.CPUStates) {
		return invalidf(op, "control and cpu state tables differ in length: %d vs %d",
			len(c.ControlStates), len(c.CPUStates))
	}
	for i, s := range c.ControlStates {
		if s.ID != uint32(i) {
			return invalidf(op, "control state %d has id %d, ids must be contiguous from 0", i, s.ID)
		}
		if !(s.Speedup > 0) || math.IsInf(s.Speedup, 0) {
			return invalidf(op, "control state %d speedup %v must be positive and finite", i, s.Speedup)
		}
		if s.Cost < 0 || math.IsNaN(s.Cost) || math.IsInf(s.Cost, 0) {
			return invalidf(op, "control state %d cost %v must be non-negative and finite", i, s.Cost)
		}
	}
	for i, s := range c.CPUStates {
		if s.ID != uint32(i) {
			return invalidf(op, "cpu state %d has id %d, ids must be contiguous from 0", i, s.ID)
		}
	}
	return nil
}

// Observer receives wrapper-level events for metrics collection. Every method
// is called synchronously from the State method that triggered it.
type Observer interface {
	// ObserveApply is called after each successful ApplyControl.
	ObserveApply(tag uint64, windowRate, windowPower float64)

	// ObserveGoal is called after Open and after each successful
	// SetPerformanceGoal.
	ObserveGoal(perfGoal float64)

	// ObserveError is called when a boundary crossing fails.
	ObserveError(op string)
}

type noopObserver struct{}

func (noopObserver) ObserveApply(uint64, float64, float64) {}
func (noopObserver) ObserveGoal(float64)                   {}
func (noopObserver) ObserveError(string)                   {}
