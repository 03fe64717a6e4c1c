package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/model"
	"github.com/chrishoke/access-bridge-explorer/internal/output"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Dump the accessible tree of a Java window",
	Long:  "Read the accessible object tree below a Java window (or every window when no scope is given) and output it as structured data.",
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Int("jvm", 0, "Scope to one JVM by id")
	treeCmd.Flags().String("window", "", "Scope to one window by title substring")
	treeCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited)")
	treeCmd.Flags().String("roles", "", "Comma-separated roles to include (e.g. \"push button,text\")")
	treeCmd.Flags().String("text", "", "Keep only subtrees matching this text")
	treeCmd.Flags().Bool("flat", false, "Flatten the tree into a list with role paths")
	treeCmd.Flags().Bool("pretty", false, "Pretty-print JSON")
}

func runTree(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	jvm, _ := cmd.Flags().GetInt("jvm")
	window, _ := cmd.Flags().GetString("window")
	depth, _ := cmd.Flags().GetInt("depth")
	rolesStr, _ := cmd.Flags().GetString("roles")
	text, _ := cmd.Flags().GetString("text")
	flat, _ := cmd.Flags().GetBool("flat")

	var nodes []model.Node
	var scopeJvm int
	var scopeTitle string

	if jvm != 0 || window != "" {
		win, err := bridge.FindWindow(provider, jvm, window)
		if err != nil {
			return err
		}
		scopeJvm = win.JvmID()
		scopeTitle, _ = win.Title()
		nodes = []model.Node{model.FromNode(win, depth)}
		win.Dispose()
	} else {
		nodes, err = model.Snapshot(provider, depth)
		if err != nil {
			return err
		}
	}

	if roles := parseRoles(rolesStr); roles != nil {
		nodes = model.FilterByRole(nodes, roles)
	}
	if text != "" {
		nodes = model.FilterByText(nodes, text)
	}
	if nodes == nil {
		nodes = []model.Node{}
	}

	ts := time.Now().Unix()
	if flat {
		return output.Print(output.TreeFlatResult{
			Jvm:   scopeJvm,
			Title: scopeTitle,
			TS:    ts,
			Nodes: model.Flatten(nodes),
		})
	}
	return output.Print(output.TreeResult{
		Jvm:   scopeJvm,
		Title: scopeTitle,
		TS:    ts,
		Nodes: nodes,
	})
}
