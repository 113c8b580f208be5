// Package main provides the entry point for the tsxmod CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsxmod/tsxmod/cmd/tsxmod/commands"
	"github.com/tsxmod/tsxmod/pkg/version"
)

var (
	configPath string
	quiet      bool
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "tsxmod",
		Short: "tsxmod - structural JSX/TSX code transformation",
		Long: `tsxmod applies declarative structural operations to JSX/TSX source files.

Commands:
  apply     Apply a batch of operations to a file
  inspect   Report imports, state hooks, and located declarations
  check     Check files for syntax issues
  new       Originate a provider, store, or extracted component
  mcp       Start the MCP stdio server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: .tsxmod.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	// Add commands.
	rootCmd.AddCommand(commands.NewApplyCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewNewCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "tsxmod %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
