// Package hostcpu derives a POET CPU state table from the running machine.
//
// On Linux the frequency ladder comes from cpufreq's
// scaling_available_frequencies; elsewhere (or when sysfs is unavailable) the
// package falls back to a single state at the base frequency reported by
// gopsutil. The result is ordered by ascending frequency with contiguous IDs,
// which is what poet.Open requires.
package hostcpu

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/heartbeats/poet-go/pkg/poet"
)

const availableFreqPath = "/sys/devices/system/cpu/cpu0/cpufreq/scaling_available_frequencies"

// Discover builds a CPU state table for this machine.
func Discover() ([]poet.CPUState, error) {
	cores, err := cpu.Counts(true)
	if err != nil {
		return nil, fmt.Errorf("hostcpu: counting cpus: %w", err)
	}
	if cores < 1 {
		return nil, fmt.Errorf("hostcpu: no cpus reported")
	}

	if data, err := os.ReadFile(availableFreqPath); err == nil {
		freqs, perr := ParseAvailableFrequencies(string(data))
		if perr == nil && len(freqs) > 0 {
			return Ladder(freqs, uint32(cores)), nil
		}
	}

	// No cpufreq ladder; a single state at the base frequency.
	base, err := baseFrequencyKHz()
	if err != nil {
		return nil, err
	}
	return Ladder([]uint64{base}, uint32(cores)), nil
}

func baseFrequencyKHz() (uint64, error) {
	info, err := cpu.Info()
	if err != nil {
		return 0, fmt.Errorf("hostcpu: reading cpu info: %w", err)
	}
	if len(info) == 0 || info[0].Mhz <= 0 {
		return 0, fmt.Errorf("hostcpu: no usable frequency in cpu info")
	}
	return uint64(info[0].Mhz * 1000), nil
}

// ParseAvailableFrequencies parses cpufreq's scaling_available_frequencies
// content: whitespace-separated frequencies in kHz, in no guaranteed order.
func ParseAvailableFrequencies(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	freqs := make([]uint64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("hostcpu: bad frequency %q: %w", f, err)
		}
		if v > 0 {
			freqs = append(freqs, v)
		}
	}
	return freqs, nil
}

// Ladder turns a frequency list into a CPU state table: deduplicated,
// ascending by frequency, contiguous IDs, all states using every core.
func Ladder(freqs []uint64, cores uint32) []poet.CPUState {
	uniq := make([]uint64, 0, len(freqs))
	seen := make(map[uint64]bool, len(freqs))
	for _, f := range freqs {
		if f > 0 && !seen[f] {
			seen[f] = true
			uniq = append(uniq, f)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	states := make([]poet.CPUState, len(uniq))
	for i, f := range uniq {
		states[i] = poet.CPUState{ID: uint32(i), Freq: f, Cores: cores}
	}
	return states
}

// ControlTable derives a first-cut control table from a CPU table: speedup
// and cost scale linearly with frequency relative to the slowest state. It is
// a starting point for calibration, not a measurement.
func ControlTable(states []poet.CPUState) []poet.ControlState {
	if len(states) == 0 {
		return nil
	}
	base := float64(states[0].Freq)
	out := make([]poet.ControlState, len(states))
	for i, s := range states {
		ratio := 1.0
		if base > 0 {
			ratio = float64(s.Freq) / base
		}
		out[i] = poet.ControlState{ID: uint32(i), Speedup: ratio, Cost: ratio}
	}
	return out
}
