package config

import "time"

// Default values for configuration.
const (
	DefaultColor       = ColorAuto
	DefaultStatsFormat = StatsFormatText

	DefaultWebhookTrigger = WebhookTriggerOnSamples
	DefaultWebhookTimeout = 10 * time.Second
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *RunConfig {
	return &RunConfig{
		Order:       OrderNone,
		Color:       DefaultColor,
		StatsFormat: DefaultStatsFormat,
	}
}
