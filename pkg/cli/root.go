// Package cli implements the testapi command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "testapi",
	Short: "testapi is a self-contained REST API test fixture",
	Long: `testapi serves a synthetic dataset of organizations, users, and deeply
nested profiles over a REST API: CRUD with validation, dot-notation
filtering, recursive full-text search, batch mutation, and static bearer
token authentication. The dataset lives in memory and is regenerated on
every start.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	initServeCmd()
	initVersionCmd()
}
