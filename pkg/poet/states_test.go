package poet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const controlFixture = `# POET control states
# id speedup cost
0	1.0	1.0
1	1.5	1.8

2	2.1	3.0
`

const cpuFixture = `#id freq cores
0 250000 1
1 500000 2
2 1000000 4
`

func TestParseControlStates(t *testing.T) {
	states, err := ParseControlStates(strings.NewReader(controlFixture))
	require.NoError(t, err)
	require.Len(t, states, 3)
	require.Equal(t, ControlState{ID: 1, Speedup: 1.5, Cost: 1.8}, states[1])
}

func TestParseCPUStates(t *testing.T) {
	states, err := ParseCPUStates(strings.NewReader(cpuFixture))
	require.NoError(t, err)
	require.Len(t, states, 3)
	require.Equal(t, CPUState{ID: 2, Freq: 1000000, Cores: 4}, states[2])
}

func TestParseRejectsMalformedRows(t *testing.T) {
	for name, input := range map[string]string{
		"missing column":  "0 1.0\n",
		"extra column":    "0 1.0 1.0 9\n",
		"bad id":          "x 1.0 1.0\n",
		"bad speedup":     "0 fast 1.0\n",
		"out of order id": "1 1.0 1.0\n",
		"empty":           "# only comments\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseControlStates(strings.NewReader(input))
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	control := []ControlState{
		{ID: 0, Speedup: 1, Cost: 1},
		{ID: 1, Speedup: 2.5, Cost: 3.25},
	}
	cpu := []CPUState{
		{ID: 0, Freq: 250000, Cores: 1},
		{ID: 1, Freq: 1000000, Cores: 8},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteControlStates(&buf, control))
	got, err := ParseControlStates(&buf)
	require.NoError(t, err)
	require.Equal(t, control, got)

	buf.Reset()
	require.NoError(t, WriteCPUStates(&buf, cpu))
	gotCPU, err := ParseCPUStates(&buf)
	require.NoError(t, err)
	require.Equal(t, cpu, gotCPU)
}

func TestLoadStatesFromFiles(t *testing.T) {
	dir := t.TempDir()
	controlPath := filepath.Join(dir, "control_config")
	cpuPath := filepath.Join(dir, "cpu_config")
	require.NoError(t, os.WriteFile(controlPath, []byte(controlFixture), 0o644))
	require.NoError(t, os.WriteFile(cpuPath, []byte(cpuFixture), 0o644))

	control, err := LoadControlStates(controlPath)
	require.NoError(t, err)
	require.Len(t, control, 3)

	cpu, err := LoadCPUStates(cpuPath)
	require.NoError(t, err)
	require.Len(t, cpu, 3)

	_, err = LoadControlStates(filepath.Join(dir, "missing"))
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, "LoadControlStates", e.Op)
}

func TestLoadStatesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "states.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[control]]
id = 0
speedup = 1.0
cost = 1.0

[[control]]
id = 1
speedup = 1.6
cost = 2.0

[[cpu]]
id = 0
freq = 250000
cores = 2

[[cpu]]
id = 1
freq = 1000000
cores = 4
`), 0o644))

	tables, err := LoadStatesTOML(path)
	require.NoError(t, err)
	require.Len(t, tables.Control, 2)
	require.Len(t, tables.CPU, 2)
	require.Equal(t, ControlState{ID: 1, Speedup: 1.6, Cost: 2.0}, tables.Control[1])
	require.Equal(t, CPUState{ID: 1, Freq: 1000000, Cores: 4}, tables.CPU[1])
}

func TestLoadStatesTOMLRejectsBadTables(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"length mismatch": `
[[control]]
id = 0
speedup = 1.0
cost = 1.0
`,
		"non-contiguous ids": `
[[control]]
id = 1
speedup = 1.0
cost = 1.0

[[cpu]]
id = 0
freq = 250000
cores = 1
`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := LoadStatesTOML(path)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}
