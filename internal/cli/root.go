package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagjump",
		Short: "Jump from a symbol to its definition using a ctags index",
		Long: `tagjump answers "where is this symbol defined" from a tag file produced
by an external indexer such as ctags or gotags.

The tag file path comes from --tags, $TAGJUMP_TAGS_FILE, or tags_file in
.tagjump.toml, in that order, and defaults to ./tags.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("tags", "", "Path to the tag file")

	// Query Commands
	resolveCmd := &cobra.Command{
		Use:   "resolve <symbol>",
		Short: "Resolve a symbol to a unique definition or a candidate list",
		Args:  cobra.ExactArgs(1),
		RunE:  RunResolve,
	}
	resolveCmd.Flags().Bool("json", false, "Print machine-readable resolution")

	lookupCmd := &cobra.Command{
		Use:   "lookup <symbol>",
		Short: "List every tag record for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE:  RunLookup,
	}
	lookupCmd.Flags().Bool("json", false, "Print machine-readable matches")

	jumpCmd := &cobra.Command{
		Use:   "jump <file:line:column>",
		Short: "Resolve the identifier under a cursor position",
		Args:  cobra.ExactArgs(1),
		RunE:  RunJump,
	}
	jumpCmd.Flags().Bool("json", false, "Print machine-readable resolution")

	enclosingCmd := &cobra.Command{
		Use:   "enclosing <file:line>",
		Short: "Show the nearest tagged symbol at or above a line",
		Args:  cobra.ExactArgs(1),
		RunE:  RunEnclosing,
	}
	enclosingCmd.Flags().Bool("json", false, "Print machine-readable result")

	// Inspect Commands
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the tag file and report malformed lines",
		RunE:  RunCheck,
	}
	checkCmd.Flags().Bool("json", false, "Print machine-readable summary")

	// Server Commands
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve symbol resolution over MCP on stdio",
		RunE:  RunServe,
	}
	serveCmd.Flags().Bool("no-watch", false, "Do not reload the tag file when it changes")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tagjump %s\n", version)
		},
	}

	rootCmd.AddCommand(
		resolveCmd,
		lookupCmd,
		jumpCmd,
		enclosingCmd,
		checkCmd,
		serveCmd,
		versionCmd,
	)

	return rootCmd
}
