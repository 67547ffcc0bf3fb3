package hostcpu

import (
	"testing"

	"github.com/heartbeats/poet-go/pkg/poet"
)

func TestParseAvailableFrequencies(t *testing.T) {
	freqs, err := ParseAvailableFrequencies("2400000 1800000 1200000 600000\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(freqs) != 4 {
		t.Fatalf("got %d frequencies, want 4", len(freqs))
	}

	if _, err := ParseAvailableFrequencies("2400000 fast"); err == nil {
		t.Fatal("expected error for non-numeric frequency")
	}

	freqs, err = ParseAvailableFrequencies("")
	if err != nil || len(freqs) != 0 {
		t.Fatalf("empty input: freqs=%v err=%v", freqs, err)
	}
}

func TestLadder(t *testing.T) {
	// Descending, with a duplicate and a zero that must be dropped.
	states := Ladder([]uint64{2400000, 1200000, 2400000, 600000, 0}, 8)

	want := []poet.CPUState{
		{ID: 0, Freq: 600000, Cores: 8},
		{ID: 1, Freq: 1200000, Cores: 8},
		{ID: 2, Freq: 2400000, Cores: 8},
	}
	if len(states) != len(want) {
		t.Fatalf("got %d states, want %d", len(states), len(want))
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("state %d = %+v, want %+v", i, states[i], want[i])
		}
	}
}

func TestControlTable(t *testing.T) {
	cpu := Ladder([]uint64{600000, 1200000, 2400000}, 4)
	control := ControlTable(cpu)

	if len(control) != 3 {
		t.Fatalf("got %d control states, want 3", len(control))
	}
	if control[0].Speedup != 1.0 || control[0].Cost != 1.0 {
		t.Fatalf("base state not identity: %+v", control[0])
	}
	if control[2].Speedup != 4.0 {
		t.Fatalf("top state speedup = %v, want 4 (2400000/600000)", control[2].Speedup)
	}
	for i, s := range control {
		if s.ID != uint32(i) {
			t.Fatalf("control ids not contiguous: %+v", control)
		}
	}

	if got := ControlTable(nil); got != nil {
		t.Fatalf("ControlTable(nil) = %v, want nil", got)
	}
}
