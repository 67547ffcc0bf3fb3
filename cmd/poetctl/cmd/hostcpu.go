package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/heartbeats/poet-go/pkg/poet"
	"github.com/heartbeats/poet-go/pkg/poet/hostcpu"
)

var hostcpuEmit bool

// hostcpuCmd represents the hostcpu command
var hostcpuCmd = &cobra.Command{
	Use:   "hostcpu",
	Short: "Derive a CPU state table from this machine",
	Long: `Inspect this machine's cpufreq ladder and core count and derive a POET CPU
state table from them, plus a linear first-cut control table for calibration.`,
	RunE: runHostCPU,
}

func init() {
	rootCmd.AddCommand(hostcpuCmd)

	hostcpuCmd.Flags().BoolVar(&hostcpuEmit, "emit", false, "emit the classic text format instead of a table")
}

func runHostCPU(cmd *cobra.Command, args []string) error {
	cpuStates, err := hostcpu.Discover()
	if err != nil {
		return err
	}
	controlStates := hostcpu.ControlTable(cpuStates)

	if hostcpuEmit {
		if err := poet.WriteControlStates(os.Stdout, controlStates); err != nil {
			return err
		}
		fmt.Println()
		return poet.WriteCPUStates(os.Stdout, cpuStates)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Freq (kHz)", "Cores", "Speedup", "Cost")
	for i, s := range cpuStates {
		table.Append(
			fmt.Sprintf("%d", s.ID),
			fmt.Sprintf("%d", s.Freq),
			fmt.Sprintf("%d", s.Cores),
			fmt.Sprintf("%.3f", controlStates[i].Speedup),
			fmt.Sprintf("%.3f", controlStates[i].Cost),
		)
	}
	return table.Render()
}
