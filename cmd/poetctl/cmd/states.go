package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/heartbeats/poet-go/pkg/poet"
)

var (
	statesControlFile string
	statesCPUFile     string
	statesTOMLFile    string
)

// statesCmd represents the states command
var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Display POET state tables",
	Long: `Load control and CPU state tables from the classic text files or a single
TOML file and display them.`,
	RunE: runStates,
}

func init() {
	rootCmd.AddCommand(statesCmd)

	statesCmd.Flags().StringVar(&statesControlFile, "control", "", "control state file (id speedup cost)")
	statesCmd.Flags().StringVar(&statesCPUFile, "cpu", "", "cpu state file (id freq cores)")
	statesCmd.Flags().StringVar(&statesTOMLFile, "toml", "", "TOML file holding both tables")
}

func runStates(cmd *cobra.Command, args []string) error {
	if statesTOMLFile == "" && statesControlFile == "" && statesCPUFile == "" {
		return fmt.Errorf("provide --toml, or --control and/or --cpu")
	}

	var tables poet.StateTables
	if statesTOMLFile != "" {
		var err error
		tables, err = poet.LoadStatesTOML(statesTOMLFile)
		if err != nil {
			return err
		}
	} else {
		if statesControlFile != "" {
			control, err := poet.LoadControlStates(statesControlFile)
			if err != nil {
				return err
			}
			tables.Control = control
		}
		if statesCPUFile != "" {
			cpu, err := poet.LoadCPUStates(statesCPUFile)
			if err != nil {
				return err
			}
			tables.CPU = cpu
		}
	}

	if len(tables.Control) > 0 {
		fmt.Println("Control states:")
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Speedup", "Cost")
		for _, s := range tables.Control {
			table.Append(
				fmt.Sprintf("%d", s.ID),
				fmt.Sprintf("%.3f", s.Speedup),
				fmt.Sprintf("%.3f", s.Cost),
			)
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(tables.CPU) > 0 {
		fmt.Println("CPU states:")
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Freq (kHz)", "Cores")
		for _, s := range tables.CPU {
			table.Append(
				fmt.Sprintf("%d", s.ID),
				fmt.Sprintf("%d", s.Freq),
				fmt.Sprintf("%d", s.Cores),
			)
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	return nil
}
