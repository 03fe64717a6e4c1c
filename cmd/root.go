package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/output"
	"github.com/chrishoke/access-bridge-explorer/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "access-bridge-explorer",
	Short: "Inspect the accessible tree of running Java applications",
	Long:  "A CLI and TUI for exploring the accessible object tree that Java applications expose through the platform accessibility bridge: windows, nodes, properties, and live events.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("sim", false, "Use the built-in simulated Java tree instead of a live bridge")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags (e.g. snapshot --format png).
		format, _ := rootCmd.PersistentFlags().GetString("format")

		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
