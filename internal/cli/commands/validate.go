package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pctlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pattern>",
		Short: "Validate a capture pattern",
		Long: `Validate a pctlog pattern without reading any input.

Checks:
  - Regular expression syntax
  - Which capture group holds the number
  - Extra capture groups (warning only; they are ignored)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	pattern := args[0]

	fmt.Fprintf(out, "Validating %s...\n", pattern)

	cfg := config.DefaultConfig()
	cfg.Pattern = pattern
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	re := cfg.Matcher().Pattern()
	groups := re.NumSubexp()

	fmt.Fprintf(out, "\nPattern valid!\n")
	fmt.Fprintf(out, "  Capture groups: %d\n", groups)
	if cfg.Matcher().Group() == 0 {
		fmt.Fprintf(out, "  Number source:  whole match\n")
	} else {
		name := re.SubexpNames()[1]
		if name != "" {
			fmt.Fprintf(out, "  Number source:  group 1 (%s)\n", name)
		} else {
			fmt.Fprintf(out, "  Number source:  group 1\n")
		}
	}

	if groups > 1 {
		fmt.Fprintf(out, "\nWarning: %d capture groups found; only the first is used\n", groups)
	}
	if groups == 0 {
		fmt.Fprintf(out, "\nWarning: no capture group; the whole match must be a number\n")
	}

	return nil
}
