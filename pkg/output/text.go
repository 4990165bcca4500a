package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ccollicutt/pctlog/pkg/style"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	if !report.HasSamples() {
		_, err := fmt.Fprintf(w, "pctlog: %d lines, 0 samples\n", report.Summary.LinesRead)
		return err
	}
	p := report.Percentiles
	_, err := fmt.Fprintf(w, "pctlog: %d lines, %d samples, p50=%d p90=%d p99=%d\n",
		report.Summary.LinesRead, p.Samples, p.P50, p.P90, p.P99)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString(style.Colorize("=== pctlog summary ===", f.opts.Color, color.Bold))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Pattern: %s\n", report.Metadata.Pattern)
	fmt.Fprintf(&sb, "Lines: %d read, %d matched, %d written\n",
		report.Summary.LinesRead,
		report.Summary.LinesMatched,
		report.Summary.LinesEmitted)

	if report.HasSamples() {
		p := report.Percentiles
		fmt.Fprintf(&sb, "Samples: %d\n", p.Samples)
		f.writeValue(&sb, "min", p.Min, nil)
		f.writeValue(&sb, "p50", p.P50, []color.Attribute{color.FgYellow})
		f.writeValue(&sb, "p90", p.P90, []color.Attribute{color.FgRed, color.Bold})
		f.writeValue(&sb, "p99", p.P99, []color.Attribute{color.FgHiWhite, color.BgRed, color.Bold})
		f.writeValue(&sb, "max", p.Max, nil)
	} else {
		sb.WriteString("Samples: 0 (no percentiles)\n")
	}

	if f.opts.Verbose {
		if len(report.Metadata.Sources) > 0 {
			fmt.Fprintf(&sb, "Sources: %s\n", strings.Join(report.Metadata.Sources, ", "))
		}
		fmt.Fprintf(&sb, "Mode: %s\n", report.Metadata.Mode)
		fmt.Fprintf(&sb, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *TextFormatter) writeValue(sb *strings.Builder, label string, v uint64, attrs []color.Attribute) {
	value := fmt.Sprintf("%d", v)
	if len(attrs) > 0 {
		value = style.Colorize(value, f.opts.Color, attrs...)
	}
	fmt.Fprintf(sb, "  %s  %s\n", label, value)
}
