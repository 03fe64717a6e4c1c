package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/model"
	"github.com/chrishoke/access-bridge-explorer/internal/output"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List accessible Java application windows",
	Long:  "List the top-level windows of every Java application reachable through the accessibility bridge, with JVM id, title, role, and bounds.",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Int("jvm", 0, "Filter windows by JVM id")
	windowsCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	jvm, _ := cmd.Flags().GetInt("jvm")

	windows, err := model.Windows(provider)
	if err != nil {
		return err
	}
	if jvm != 0 {
		var filtered []model.Window
		for _, w := range windows {
			if w.JvmID == jvm {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}
	if windows == nil {
		windows = []model.Window{}
	}

	return output.Print(output.WindowsResult{
		TS:      time.Now().Unix(),
		Windows: windows,
	})
}
