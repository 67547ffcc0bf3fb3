package poet_test

import (
	"errors"
	"testing"

	"github.com/heartbeats/poet-go/pkg/poet"
)

// Without the native library every boundary operation reports ErrNotBuilt
// instead of failing in a less structured way. With libpoet linked these
// paths exercise the real constructor and are covered by the examples.
func TestOpenWithoutNativeLibrary(t *testing.T) {
	if poet.NativeAvailable() {
		t.Skip("native bindings linked; stub behavior not applicable")
	}

	s, err := poet.Open(poet.Config{
		PerformanceGoal: 100.0,
		ControlStates:   []poet.ControlState{poet.DefaultControlState()},
		CPUStates:       []poet.CPUState{poet.DefaultCPUState()},
		Period:          20,
		BufferDepth:     1,
	})
	if !errors.Is(err, poet.ErrNotBuilt) {
		t.Fatalf("got %v, want ErrNotBuilt", err)
	}
	if s != nil {
		t.Fatalf("expected nil state, got %+v", s)
	}
}

func TestNativeLoadersWithoutNativeLibrary(t *testing.T) {
	if poet.NativeAvailable() {
		t.Skip("native bindings linked; stub behavior not applicable")
	}

	if _, err := poet.NativeControlStates(""); !errors.Is(err, poet.ErrNotBuilt) {
		t.Fatalf("NativeControlStates: got %v, want ErrNotBuilt", err)
	}
	if _, err := poet.NativeCPUStates(""); !errors.Is(err, poet.ErrNotBuilt) {
		t.Fatalf("NativeCPUStates: got %v, want ErrNotBuilt", err)
	}
}
