// Package config holds the run configuration assembled from command-line flags.
package config

import (
	"time"

	"github.com/ccollicutt/pctlog/pkg/matcher"
	"github.com/ccollicutt/pctlog/pkg/style"
)

// Order controls how output lines are ordered.
type Order string

const (
	// OrderNone keeps input order.
	OrderNone Order = ""
	// OrderAsc sorts matching lines by captured number, smallest first.
	OrderAsc Order = "asc"
	// OrderDesc sorts matching lines by captured number, largest first.
	OrderDesc Order = "desc"
)

// ColorChoice controls when emphasis markers are written.
type ColorChoice string

const (
	ColorAuto   ColorChoice = "auto"
	ColorAlways ColorChoice = "always"
	ColorNever  ColorChoice = "never"
)

// StatsFormat selects the summary report format.
type StatsFormat string

const (
	StatsFormatText StatsFormat = "text"
	StatsFormatJSON StatsFormat = "json"
	StatsFormatYAML StatsFormat = "yaml"
)

// WebhookTrigger defines when the summary is posted to a webhook.
type WebhookTrigger string

const (
	// WebhookTriggerOnSamples posts only when at least one number was captured.
	WebhookTriggerOnSamples WebhookTrigger = "on_samples"
	// WebhookTriggerAlways posts after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an HTTP endpoint that receives the JSON summary.
type WebhookConfig struct {
	URL     string
	Token   string         // Bearer token (optional)
	Trigger WebhookTrigger // Defaults to on_samples
	Timeout time.Duration  // Defaults to 10s
}

// RunConfig is the configuration for one invocation. It is read-only once
// Validate has succeeded.
type RunConfig struct {
	// Pattern is the regular expression whose first capture group holds the number.
	Pattern string

	// Mode is the emphasis mode.
	Mode style.Mode

	// Order sorts matching lines by their captured number.
	Order Order

	// MatchingOnly drops lines without a numeric capture.
	MatchingOnly bool

	// Files are paths or globs to read. Empty means standard input.
	Files []string

	// Color controls emphasis markers.
	Color ColorChoice

	// Stats enables the summary report on stderr.
	Stats bool

	// StatsFormat is the summary report format.
	StatsFormat StatsFormat

	// Webhook posts the summary after the run (optional).
	Webhook *WebhookConfig

	// compiled is populated during validation.
	compiled *matcher.Matcher
}

// Matcher returns the compiled matcher (populated by Validate).
func (c *RunConfig) Matcher() *matcher.Matcher {
	return c.compiled
}

// ReadsStdin reports whether input comes from standard input.
func (c *RunConfig) ReadsStdin() bool {
	return len(c.Files) == 0
}
