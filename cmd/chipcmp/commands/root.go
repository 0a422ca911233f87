package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-chip/chipcmp/pkg/version"
)

// NewRootCommand builds the chipcmp command tree. Invoked without a
// subcommand, the root runs compare.
func NewRootCommand() *cobra.Command {
	globals := &GlobalOptions{}
	cc := &CompareCommand{globals: globals}

	rootCmd := &cobra.Command{
		Use:   "chipcmp [reference candidate]",
		Short: "chipcmp - field-by-field output verification",
		Long: `chipcmp checks generated test output against a known-good solution file.

Without arguments it compares ./tmp/chip_test.h against
./test/resource/chip/chip_test.h using '+' as the field delimiter.

Commands:
  compare   Compare a generated file against its reference solution
  version   Show version information`,
		Args:          pathArgs,
		RunE:          cc.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "config file (default: .chipcmp.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globals.Quiet, "quiet", "q", false, "suppress log output")

	cc.registerFlags(rootCmd)

	rootCmd.AddCommand(NewCompareCommand(globals))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand creates the version subcommand.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chipcmp %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
