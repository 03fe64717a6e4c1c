package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Open the interactive inspector",
	Long: `Open the interactive terminal inspector: a live accessible tree on the
left, the selected node's property groups on the right, and a streaming
event log below. Use --sim to explore the built-in demo tree.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	// The controller owns the provider from here; it shuts it down on
	// dispose.
	return tui.Run(provider)
}
