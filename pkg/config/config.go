package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ccollicutt/pctlog/pkg/matcher"
)

var (
	// ErrPatternCompile is returned when the pattern is not a valid regular expression.
	ErrPatternCompile = errors.New("invalid pattern")

	// ErrConflictingOrder is returned when sorting and matching-only are combined.
	ErrConflictingOrder = errors.New("--sorting and --matching are mutually exclusive")
)

// ParseOrder converts a --sorting value to an Order.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case OrderNone:
		return OrderNone, nil
	case OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	default:
		return OrderNone, fmt.Errorf("invalid sorting %q (must be asc or desc)", s)
	}
}

// Validate checks a configuration for errors and compiles the pattern.
func Validate(cfg *RunConfig) error {
	if cfg.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", ErrPatternCompile)
	}

	m, err := matcher.Compile(cfg.Pattern)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatternCompile, err)
	}
	cfg.compiled = m

	switch cfg.Order {
	case OrderNone, OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("invalid sorting %q (must be asc or desc)", cfg.Order)
	}

	if cfg.MatchingOnly && cfg.Order != OrderNone {
		return ErrConflictingOrder
	}

	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (must be auto, always, or never)", cfg.Color)
	}

	if cfg.StatsFormat == "" {
		cfg.StatsFormat = DefaultStatsFormat
	}
	switch cfg.StatsFormat {
	case StatsFormatText, StatsFormatJSON, StatsFormatYAML:
	default:
		return fmt.Errorf("invalid stats format %q (must be text, json, or yaml)", cfg.StatsFormat)
	}

	if cfg.Webhook != nil {
		if err := validateWebhook(cfg.Webhook); err != nil {
			return fmt.Errorf("webhook: %w", err)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	if wh.Trigger == "" {
		wh.Trigger = DefaultWebhookTrigger
	}
	switch wh.Trigger {
	case WebhookTriggerOnSamples, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_samples, always, or never)", wh.Trigger)
	}

	if wh.Timeout < 0 {
		return errors.New("timeout must be positive")
	}
	if wh.Timeout == 0 {
		wh.Timeout = DefaultWebhookTimeout
	}
	return nil
}
