//go:build !cgo || windows

package bindings

// Stub implementations for non-cgo builds or Windows. The package compiles,
// every entry point reports ErrNotBuilt, and nothing allocates.

// Built reports whether the native bindings are linked into this binary.
func Built() bool { return false }

// Version returns the version string reported by the native library, or empty
// when not available.
func Version() string { return "" }

func Init(InitConfig) (Handle, error) {
	return 0, ErrNotBuilt
}

func ApplyControl(Handle, uint64, float64, float64) error {
	return ErrNotBuilt
}

func SetPerformanceGoal(Handle, float64) error {
	return ErrNotBuilt
}

func Destroy(Handle) error {
	return ErrNotBuilt
}

func GetControlStates(string) ([]ControlState, error) {
	return nil, ErrNotBuilt
}

func GetCPUStates(string) ([]CPUState, error) {
	return nil, ErrNotBuilt
}
