// Package cli provides the command-line interface for pctlog.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pctlog/internal/cli/commands"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 2
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.HighlightOptions{}

	rootCmd := &cobra.Command{
		Use:   "pctlog <pattern>",
		Short: "Highlight numbers in logs by percentile",
		Long: `pctlog reads a log, captures a number from every line with a regular
expression and highlights each value by the percentile band it falls into.

The first capture group of the pattern holds the number. A pattern without
groups uses the whole match. Lines whose capture is not a non-negative
integer are treated as non-matching.

Bands are computed over the whole input (nearest rank):
  p50  values >= the median              (yellow)
  p90  values >= the 90th percentile     (bold red)
  p99  values >= the 99th percentile     (bold white on red)

The whole input is read before anything is printed.

A pattern that is also a subcommand name (detect, validate, version, help,
completion) runs that subcommand. Put -- before such a pattern to use it as
a pattern:
  pctlog --file app.log -- version

Exit codes:
  0 - Success (including when nothing matched)
  2 - Invalid pattern, invalid flags, or unreadable input

Examples:
  pctlog 'Took (\d+)ms' --file app.log
  kubectl logs api | pctlog 'latency=(\d+)' --sorting desc
  pctlog 'status=(\d{3})' -f '/var/log/app/*.log' --matching --stats`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunHighlight(cmd, args, opts)
		},
	}

	commands.AddHighlightFlags(rootCmd, opts)

	// Add subcommands
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
