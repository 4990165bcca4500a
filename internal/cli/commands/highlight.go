package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pctlog/pkg/config"
	"github.com/ccollicutt/pctlog/pkg/output"
	"github.com/ccollicutt/pctlog/pkg/parser"
	"github.com/ccollicutt/pctlog/pkg/pipeline"
	"github.com/ccollicutt/pctlog/pkg/style"
	"github.com/ccollicutt/pctlog/pkg/webhook"
)

// HighlightOptions holds command-line options for the root command.
type HighlightOptions struct {
	File      string
	Bold      bool
	Highlight bool
	Sorting   string
	Matching  bool
	Color     string

	// Summary report options
	Stats       bool
	StatsFormat string
	Verbose     bool
	Quiet       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// AddHighlightFlags registers the highlighting flags on cmd.
func AddHighlightFlags(cmd *cobra.Command, opts *HighlightOptions) {
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read from a file or glob instead of stdin")
	cmd.Flags().BoolVarP(&opts.Bold, "bold", "b", false, "Make every match bold, ignoring percentiles")
	cmd.Flags().BoolVar(&opts.Highlight, "highlight", false, "Highlight every match in one color, ignoring percentiles")
	cmd.Flags().StringVar(&opts.Sorting, "sorting", "", "Sort matching lines by captured number (asc|desc)")
	cmd.Flags().BoolVar(&opts.Matching, "matching", false, "Only print lines that match the pattern")
	cmd.Flags().StringVar(&opts.Color, "color", string(config.DefaultColor), "When to emit emphasis (auto|always|never)")

	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Print a percentile summary to stderr after the output")
	cmd.Flags().StringVar(&opts.StatsFormat, "stats-format", string(config.DefaultStatsFormat), "Summary format (text|json|yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include sources and timing in the summary")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Reduce the summary to one line")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "POST the JSON summary to this endpoint after the run")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.DefaultWebhookTrigger), "When to fire the webhook (on_samples|always|never)")

	cmd.MarkFlagsMutuallyExclusive("bold", "highlight")
	cmd.MarkFlagsMutuallyExclusive("sorting", "matching")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BuildConfig converts command-line options to a validated run configuration.
func BuildConfig(pattern string, opts *HighlightOptions) (*config.RunConfig, error) {
	order, err := config.ParseOrder(opts.Sorting)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	cfg.Pattern = pattern
	cfg.Mode = style.ParseMode(opts.Bold, opts.Highlight)
	cfg.Order = order
	cfg.MatchingOnly = opts.Matching
	cfg.Color = config.ColorChoice(opts.Color)
	cfg.Stats = opts.Stats
	cfg.StatsFormat = config.StatsFormat(opts.StatsFormat)
	if opts.File != "" {
		cfg.Files = []string{opts.File}
	}
	if opts.WebhookURL != "" {
		cfg.Webhook = &config.WebhookConfig{
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunHighlight reads the input, classifies captured numbers and writes the
// styled lines to the command's output.
func RunHighlight(cmd *cobra.Command, args []string, opts *HighlightOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Pattern errors abort before any input is read
	cfg, err := BuildConfig(args[0], opts)
	if err != nil {
		return err
	}

	source, err := openSource(cmd, cfg)
	if err != nil {
		return err
	}
	defer source.Close()

	stdout := cmd.OutOrStdout()
	styler := style.New(cfg.Mode, style.WithColor(resolveColor(cfg.Color, stdout)))

	result, err := pipeline.FromConfig(cfg, styler).Run(ctx, source, stdout)
	if err != nil {
		return err
	}

	report := output.NewReport(result, cfg.Pattern, cfg.Mode.String())

	// Webhook failures are reported but never fail the run
	if cfg.Webhook != nil {
		sendWebhook(ctx, cmd.ErrOrStderr(), cfg.Webhook, report)
	}

	if cfg.Stats {
		return writeStats(ctx, cmd.ErrOrStderr(), cfg, opts, report)
	}
	return nil
}

func openSource(cmd *cobra.Command, cfg *config.RunConfig) (parser.LineSource, error) {
	if cfg.ReadsStdin() {
		return parser.NewReaderSource(cmd.InOrStdin(), "stdin"), nil
	}

	files, err := parser.ExpandGlobs(cfg.Files)
	if err != nil {
		return nil, err
	}
	return parser.NewFileSource(files), nil
}

// resolveColor decides whether to emit emphasis markers on w.
func resolveColor(choice config.ColorChoice, w io.Writer) bool {
	switch choice {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && style.ColorEnabled(f)
	}
}

func writeStats(ctx context.Context, w io.Writer, cfg *config.RunConfig, opts *HighlightOptions, report *output.Report) error {
	formatter, err := output.NewFormatter(string(cfg.StatsFormat), output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Color:   resolveColor(cfg.Color, w),
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, w); err != nil {
		return fmt.Errorf("formatting summary: %w", err)
	}
	return nil
}

func sendWebhook(ctx context.Context, w io.Writer, wh *config.WebhookConfig, report *output.Report) {
	if !webhook.ShouldFire(wh.Trigger, report) {
		return
	}

	resp := webhook.NewClient().Send(ctx, report, *wh)
	if resp.Success() {
		fmt.Fprintf(w, "Webhook: sent (%d, %s)\n", resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(w, "Webhook: failed (%v)\n", resp.Error)
	}
}
