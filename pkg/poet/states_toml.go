package poet

import (
	"github.com/BurntSushi/toml"
)

// StateTables bundles the two tables a controller needs. The TOML form keeps
// both in one file:
//
//	[[control]]
//	id = 0
//	speedup = 1.0
//	cost = 1.0
//
//	[[cpu]]
//	id = 0
//	freq = 1800000
//	cores = 4
type StateTables struct {
	Control []ControlState
	CPU     []CPUState
}

type tomlControlState struct {
	ID      uint32  `toml:"id"`
	Speedup float64 `toml:"speedup"`
	Cost    float64 `toml:"cost"`
}

type tomlCPUState struct {
	ID    uint32 `toml:"id"`
	Freq  uint64 `toml:"freq"`
	Cores uint32 `toml:"cores"`
}

type tomlTables struct {
	Control []tomlControlState `toml:"control"`
	CPU     []tomlCPUState     `toml:"cpu"`
}

// LoadStatesTOML reads both state tables from one TOML file. IDs must be
// contiguous from 0 in both tables and the tables must be the same length,
// matching what Open will later enforce.
func LoadStatesTOML(path string) (StateTables, error) {
	const op = "LoadStatesTOML"

	var raw tomlTables
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return StateTables{}, &Error{Op: op, Err: err}
	}

	t := StateTables{
		Control: make([]ControlState, len(raw.Control)),
		CPU:     make([]CPUState, len(raw.CPU)),
	}
	for i, s := range raw.Control {
		if s.ID != uint32(i) {
			return StateTables{}, invalidf(op, "control state %d has id %d, ids must be contiguous from 0", i, s.ID)
		}
		t.Control[i] = ControlState{ID: s.ID, Speedup: s.Speedup, Cost: s.Cost}
	}
	for i, s := range raw.CPU {
		if s.ID != uint32(i) {
			return StateTables{}, invalidf(op, "cpu state %d has id %d, ids must be contiguous from 0", i, s.ID)
		}
		t.CPU[i] = CPUState{ID: s.ID, Freq: s.Freq, Cores: s.Cores}
	}
	if len(t.Control) == 0 {
		return StateTables{}, invalidf(op, "no control states found")
	}
	if len(t.Control) != len(t.CPU) {
		return StateTables{}, invalidf(op, "control and cpu tables differ in length: %d vs %d",
			len(t.Control), len(t.CPU))
	}
	return t, nil
}
