package poet

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartbeats/poet-go/internal/bindings"
)

// The classic POET table formats: whitespace-separated columns, one state per
// line, '#' starts a comment.
//
//	control:  id  speedup  cost
//	cpu:      id  freq(kHz)  cores
//
// IDs must be contiguous from 0 in file order, matching what the native
// loader enforces.

// LoadControlStates parses a control state table in pure Go, mirroring the
// native get_control_states semantics.
func LoadControlStates(path string) ([]ControlState, error) {
	const op = "LoadControlStates"

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	defer f.Close()
	return ParseControlStates(f)
}

// LoadCPUStates parses a CPU state table in pure Go, mirroring the native
// get_cpu_states semantics.
func LoadCPUStates(path string) ([]CPUState, error) {
	const op = "LoadCPUStates"

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	defer f.Close()
	return ParseCPUStates(f)
}

// ParseControlStates reads control states from r in the classic text format.
func ParseControlStates(r io.Reader) ([]ControlState, error) {
	const op = "ParseControlStates"

	var states []ControlState
	err := scanRows(r, 3, func(line int, fields []string) error {
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return invalidf(op, "line %d: bad id %q", line, fields[0])
		}
		speedup, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return invalidf(op, "line %d: bad speedup %q", line, fields[1])
		}
		cost, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return invalidf(op, "line %d: bad cost %q", line, fields[2])
		}
		if id != uint64(len(states)) {
			return invalidf(op, "line %d: id %d out of order, want %d", line, id, len(states))
		}
		states = append(states, ControlState{ID: uint32(id), Speedup: speedup, Cost: cost})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, invalidf(op, "no states found")
	}
	return states, nil
}

// ParseCPUStates reads CPU states from r in the classic text format.
func ParseCPUStates(r io.Reader) ([]CPUState, error) {
	const op = "ParseCPUStates"

	var states []CPUState
	err := scanRows(r, 3, func(line int, fields []string) error {
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return invalidf(op, "line %d: bad id %q", line, fields[0])
		}
		freq, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return invalidf(op, "line %d: bad freq %q", line, fields[1])
		}
		cores, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return invalidf(op, "line %d: bad cores %q", line, fields[2])
		}
		if id != uint64(len(states)) {
			return invalidf(op, "line %d: id %d out of order, want %d", line, id, len(states))
		}
		states = append(states, CPUState{ID: uint32(id), Freq: freq, Cores: uint32(cores)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, invalidf(op, "no states found")
	}
	return states, nil
}

// scanRows feeds non-comment, non-blank lines to fn as whitespace-split
// fields, enforcing the column count.
func scanRows(r io.Reader, columns int, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != columns {
			return invalidf("ParseStates", "line %d: want %d columns, got %d", n, columns, len(fields))
		}
		if err := fn(n, fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

// WriteControlStates renders a control table in the classic text format,
// suitable for the native loader.
func WriteControlStates(w io.Writer, states []ControlState) error {
	if _, err := fmt.Fprintln(w, "#id\tspeedup\tcost"); err != nil {
		return err
	}
	for _, s := range states {
		if _, err := fmt.Fprintf(w, "%d\t%g\t%g\n", s.ID, s.Speedup, s.Cost); err != nil {
			return err
		}
	}
	return nil
}

// WriteCPUStates renders a CPU table in the classic text format.
func WriteCPUStates(w io.Writer, states []CPUState) error {
	if _, err := fmt.Fprintln(w, "#id\tfreq\tcores"); err != nil {
		return err
	}
	for _, s := range states {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%d\n", s.ID, s.Freq, s.Cores); err != nil {
			return err
		}
	}
	return nil
}

// NativeControlStates loads a control table through the native
// get_control_states loader instead of the Go parser. An empty path selects
// the loader's built-in defaults. Requires the native bindings.
func NativeControlStates(path string) ([]ControlState, error) {
	const op = "NativeControlStates"

	states, err := bindings.GetControlStates(path)
	if err != nil {
		return nil, remapError(op, err)
	}
	return fromBindingsControl(states), nil
}

// NativeCPUStates is the CPU-table counterpart of NativeControlStates.
func NativeCPUStates(path string) ([]CPUState, error) {
	const op = "NativeCPUStates"

	states, err := bindings.GetCPUStates(path)
	if err != nil {
		return nil, remapError(op, err)
	}
	return fromBindingsCPU(states), nil
}
