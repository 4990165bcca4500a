package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pctlog/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [log-file]",
		Short: "Suggest capture patterns for numeric fields in a log",
		Long: `Sample a log and suggest patterns for the numeric fields it contains.

Samples lines from the file (or stdin when no file is given) and tests them
against common numeric fields. Reports the best match with its coverage, a
preview of its percentiles, and a ready-to-run command.

Supports:
  - Durations (ms, us, s) and "took N"
  - latency=, duration=, elapsed=, status=, bytes=, size=, count= fields
  - Apache/NGINX access log status and response size
  - JSON duration_ms / latency_ms fields

Example:
  pctlog detect /var/log/myapp.log
  pctlog detect --sample 500 --all /var/log/large.log
  kubectl logs api | pctlog detect -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected fields, not just the best match")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch opts.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (use text, json, or yaml)", opts.Output)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	source := "stdin"
	var result *detector.DetectionResult
	var err error
	if len(args) == 1 {
		source = args[0]
		result, err = d.DetectFromFile(ctx, source)
	} else {
		result, err = d.DetectFromReader(ctx, cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, source, opts)
	case "yaml":
		return outputDetectYAML(out, result, source, opts)
	default:
		return outputDetectText(out, result, source, opts)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, source string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Numeric Field Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source: %s\n", source)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No numeric field detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: write a pattern whose first capture group holds the number,")
		fmt.Fprintln(w, "then check it with: pctlog validate '<pattern>'")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Field: %s\n", best.Field.Name)
	fmt.Fprintf(w, "Coverage: %.1f%% (%d/%d lines matched)\n",
		best.Coverage*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Captured: %d%s\n", best.SampleValue, best.Field.Unit)
	b := best.Stats.Boundaries
	fmt.Fprintf(w, "Sampled percentiles: p50=%d p90=%d p99=%d (max %d)\n", b.P50, b.P90, b.P99, best.Stats.Max)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Command (copy to your shell) ---")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  pctlog '%s' --file %s\n", best.Field.PatternStr, fileArg(source))
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative fields detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% coverage)\n", i+2, m.Field.Name, m.Coverage*100)
			fmt.Fprintf(w, "   pattern: '%s'\n", m.Field.PatternStr)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func fileArg(source string) string {
	if source == "stdin" {
		return "<log-file>"
	}
	return source
}

// DetectMatch represents a field match in structured output.
type DetectMatch struct {
	Name        string  `json:"name" yaml:"name"`
	Pattern     string  `json:"pattern" yaml:"pattern"`
	Unit        string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Coverage    float64 `json:"coverage" yaml:"coverage"`
	MatchCount  int     `json:"match_count" yaml:"match_count"`
	SampleLine  string  `json:"sample_line" yaml:"sample_line"`
	SampleValue uint64  `json:"sample_value" yaml:"sample_value"`
	P50         uint64  `json:"p50" yaml:"p50"`
	P90         uint64  `json:"p90" yaml:"p90"`
	P99         uint64  `json:"p99" yaml:"p99"`
	Max         uint64  `json:"max" yaml:"max"`
}

// DetectOutput represents the full structured output.
type DetectOutput struct {
	Source       string        `json:"source" yaml:"source"`
	Matches      []DetectMatch `json:"matches" yaml:"matches"`
	SampledLines int           `json:"sampled_lines" yaml:"sampled_lines"`
}

func newDetectOutput(result *detector.DetectionResult, source string, opts *DetectOptions) DetectOutput {
	output := DetectOutput{
		Source:       source,
		SampledLines: result.SampledLines,
		Matches:      make([]DetectMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		output.Matches = append(output.Matches, DetectMatch{
			Name:        m.Field.Name,
			Pattern:     m.Field.PatternStr,
			Unit:        m.Field.Unit,
			Coverage:    m.Coverage,
			MatchCount:  m.MatchCount,
			SampleLine:  m.SampleLine,
			SampleValue: m.SampleValue,
			P50:         m.Stats.Boundaries.P50,
			P90:         m.Stats.Boundaries.P90,
			P99:         m.Stats.Boundaries.P99,
			Max:         m.Stats.Max,
		})
	}

	return output
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, source string, opts *DetectOptions) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newDetectOutput(result, source, opts))
}

func outputDetectYAML(w io.Writer, result *detector.DetectionResult, source string, opts *DetectOptions) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newDetectOutput(result, source, opts)); err != nil {
		return err
	}
	return encoder.Close()
}
