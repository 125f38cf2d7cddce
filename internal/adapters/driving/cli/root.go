// Package cli wires the cobra command tree for the lattice-mcp binary.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lattice-mcp/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lattice-mcp",
	Short: "MCP server for the Lattice platform",
	Long: `lattice-mcp exposes a Lattice project to MCP-compatible AI assistants.

It provides tools for retrieval, ingestion, web search and crawling, and
read-only resources for browsing contents, feeds, collections and
conversations.

Credentials are read from the environment (LATTICE_ORGANIZATION_ID,
LATTICE_ENVIRONMENT_ID, LATTICE_JWT_SECRET); a .env file in the working
directory is loaded if present.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
}

// Execute runs the root command. A .env file is best-effort: absence is
// not an error.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}
