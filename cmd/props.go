package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/output"
)

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Show the property groups of one accessible node",
	Long: `Resolve a node by child-index path below a window and print its
property groups (context info, value, text, actions, ...).

The path is dot-separated child indices from the window, e.g. "2.0.1"
is the second child's first child's second child. An empty path selects
the window itself.`,
	RunE: runProps,
}

func init() {
	rootCmd.AddCommand(propsCmd)
	propsCmd.Flags().Int("jvm", 0, "Scope to one JVM by id")
	propsCmd.Flags().String("window", "", "Scope to one window by title substring")
	propsCmd.Flags().String("path", "", "Dot-separated child-index path below the window")
	propsCmd.Flags().String("options", "", "Comma-separated property groups to fetch (default set, or \"all\")")
	propsCmd.Flags().Bool("pretty", false, "Pretty-print JSON")
}

func runProps(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	jvm, _ := cmd.Flags().GetInt("jvm")
	window, _ := cmd.Flags().GetString("window")
	pathStr, _ := cmd.Flags().GetString("path")
	optionsStr, _ := cmd.Flags().GetString("options")

	opts, err := bridge.ParsePropertyOptionList(optionsStr)
	if err != nil {
		return err
	}
	path, err := bridge.ParseChildPath(pathStr)
	if err != nil {
		return err
	}

	win, err := bridge.FindWindow(provider, jvm, window)
	if err != nil {
		return err
	}
	node, err := bridge.DescendChildPath(win, path)
	if err != nil {
		return err
	}
	defer node.Dispose()

	props, err := node.Properties(opts)
	if err != nil {
		return err
	}

	return output.Print(output.PropsResult{
		Path:  pathStr,
		TS:    time.Now().Unix(),
		Props: props,
	})
}
