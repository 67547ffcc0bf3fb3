package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartbeats/poet-go/pkg/poet"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print wrapper and native library versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("poet-go:  %s\n", poet.WrapperVersion())
		fmt.Printf("libpoet:  %s\n", poet.UpstreamVersion())
		fmt.Printf("native:   %v\n", poet.NativeAvailable())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
