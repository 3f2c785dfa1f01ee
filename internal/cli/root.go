package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morozRed/cratemap/internal/config"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cratemap",
		Short: "Explore the dependency graph of a rustdoc JSON item index",
		Long: `Cratemap loads the JSON item index rustdoc emits for a crate, extracts
every typed reference between items into a graph, resolves what each
module re-exports, and selects the items a set of path filters needs.

Settings are read from .cratemap.yaml; flags override them.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupCommand,
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().StringP("index", "i", "", "rustdoc JSON index to load")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured log output")
	rootCmd.PersistentFlags().Int("workers", 0, "Parallel workers for graph construction (default: config or CPU count)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName + " in the current directory",
		RunE:  RunInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	// Select Commands
	selectCmd := &cobra.Command{
		Use:   "select [filter...]",
		Short: "Select items matching path filters plus everything they depend on",
		RunE:  RunSelect,
	}
	selectCmd.Flags().StringSlice("exclude", nil, "Gitignore-style patterns over item paths (seg/seg) to leave unseeded")
	selectCmd.Flags().String("out", "", "Write the selection as JSON to this file")
	selectCmd.Flags().Bool("json", false, "Print machine-readable selection")
	selectCmd.Flags().Bool("watch", false, "Select again whenever the index file is rewritten")

	modulesCmd := &cobra.Command{
		Use:   "modules [module]",
		Short: "Show resolved module membership",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunModules,
	}
	modulesCmd.Flags().Bool("json", false, "Print machine-readable module membership")

	// Graph Commands
	rootsCmd := &cobra.Command{
		Use:   "roots",
		Short: "List items nothing else depends on",
		RunE:  RunRoots,
	}
	rootsCmd.Flags().Bool("json", false, "Print machine-readable roots")

	leafCmd := &cobra.Command{
		Use:   "leaf <item>",
		Short: "Show the subgraph of everything that reaches an item",
		Args:  cobra.ExactArgs(1),
		RunE:  RunLeaf,
	}
	leafCmd.Flags().Bool("json", false, "Print machine-readable subgraph")
	leafCmd.Flags().Bool("tree", false, "Print the subgraph as a tree from its roots")

	dumpCmd := &cobra.Command{
		Use:   "dump [item...]",
		Short: "Print the dependency tree below items (default: graph roots)",
		RunE:  RunDump,
	}
	dumpCmd.Flags().Int("max-depth", -1, "Maximum tree depth, 0 for unlimited (default: config)")
	dumpCmd.Flags().Bool("json", false, "Print machine-readable tree")

	edgesCmd := &cobra.Command{
		Use:   "edges",
		Short: "Export every edge as JSONL",
		RunE:  RunEdges,
	}
	edgesCmd.Flags().StringSlice("label", nil, "Only export edges with these labels")
	edgesCmd.Flags().String("out", "", "Write to this file instead of stdout")

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "List the most depended-upon items by PageRank",
		RunE:  RunRank,
	}
	rankCmd.Flags().Int("limit", 10, "Number of items to list")
	rankCmd.Flags().Bool("json", false, "Print machine-readable ranking")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the index and its graph",
		RunE:  RunStats,
	}
	statsCmd.Flags().Bool("json", false, "Print machine-readable summary")

	// Navigate Commands
	symbolCmd := &cobra.Command{
		Use:   "symbol <name|path|id>",
		Short: "Lookup items by name, path or id",
		Args:  cobra.ExactArgs(1),
		RunE:  RunSymbol,
	}
	symbolCmd.Flags().Bool("json", false, "Print machine-readable item matches")
	symbolCmd.Flags().Bool("fuzzy", false, "Enable BM25 fuzzy fallback when exact lookup misses")
	symbolCmd.Flags().Int("limit", 10, "Maximum number of item matches to return")

	childrenCmd := &cobra.Command{
		Use:   "children <item>",
		Short: "Show the direct references of an item",
		Args:  cobra.ExactArgs(1),
		RunE:  RunChildren,
	}
	childrenCmd.Flags().Bool("json", false, "Print machine-readable children")

	parentsCmd := &cobra.Command{
		Use:   "parents <item>",
		Short: "Show the items that directly reference an item",
		Args:  cobra.ExactArgs(1),
		RunE:  RunParents,
	}
	parentsCmd.Flags().Bool("json", false, "Print machine-readable parents")

	traceCmd := &cobra.Command{
		Use:   "trace <item>",
		Short: "Trace outgoing references from an item up to depth N",
		Args:  cobra.ExactArgs(1),
		RunE:  RunTrace,
	}
	traceCmd.Flags().Int("depth", 2, "Traversal depth (>=1)")
	traceCmd.Flags().Bool("json", false, "Print machine-readable trace results")

	pathCmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find the shortest reference path between two items",
		Args:  cobra.ExactArgs(2),
		RunE:  RunPath,
	}
	pathCmd.Flags().Bool("json", false, "Print machine-readable path results")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cratemap %s\n", version)
		},
	}

	rootCmd.AddCommand(
		initCmd,
		selectCmd,
		modulesCmd,
		rootsCmd,
		leafCmd,
		dumpCmd,
		edgesCmd,
		rankCmd,
		statsCmd,
		symbolCmd,
		childrenCmd,
		parentsCmd,
		traceCmd,
		pathCmd,
		versionCmd,
	)

	return rootCmd
}
