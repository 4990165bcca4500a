package config

import (
	"errors"
	"testing"

	"github.com/ccollicutt/pctlog/pkg/style"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{"", OrderNone, false},
		{"asc", OrderAsc, false},
		{"desc", OrderDesc, false},
		{"DESC", OrderDesc, false},
		{" asc ", OrderAsc, false},
		{"up", OrderNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = `Took (\d+)ms`

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Matcher() == nil {
		t.Fatal("Matcher() = nil after Validate")
	}
	if cfg.Matcher().Group() != 1 {
		t.Errorf("Matcher().Group() = %d, want 1", cfg.Matcher().Group())
	}
	if cfg.Mode != style.ModePercentile {
		t.Errorf("Mode = %v, want percentile", cfg.Mode)
	}
	if !cfg.ReadsStdin() {
		t.Error("ReadsStdin() = false, want true with no files")
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := &RunConfig{Pattern: `(\d+)`}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want auto", cfg.Color)
	}
	if cfg.StatsFormat != StatsFormatText {
		t.Errorf("StatsFormat = %q, want text", cfg.StatsFormat)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr error
	}{
		{
			name:    "empty pattern",
			cfg:     RunConfig{},
			wantErr: ErrPatternCompile,
		},
		{
			name:    "invalid regex",
			cfg:     RunConfig{Pattern: `Took (\d+ms`},
			wantErr: ErrPatternCompile,
		},
		{
			name:    "sorting with matching",
			cfg:     RunConfig{Pattern: `(\d+)`, Order: OrderAsc, MatchingOnly: true},
			wantErr: ErrConflictingOrder,
		},
		{
			name: "unknown order",
			cfg:  RunConfig{Pattern: `(\d+)`, Order: "sideways"},
		},
		{
			name: "unknown color",
			cfg:  RunConfig{Pattern: `(\d+)`, Color: "sometimes"},
		},
		{
			name: "unknown stats format",
			cfg:  RunConfig{Pattern: `(\d+)`, StatsFormat: "xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunConfig_ReadsStdin(t *testing.T) {
	cfg := RunConfig{Files: []string{"app.log"}}
	if cfg.ReadsStdin() {
		t.Error("ReadsStdin() = true, want false with a file")
	}
}

func TestValidate_Webhook(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{"valid https", WebhookConfig{URL: "https://hooks.example.com/pctlog"}, false},
		{"valid http with trigger", WebhookConfig{URL: "http://localhost:8080/", Trigger: WebhookTriggerAlways}, false},
		{"missing url", WebhookConfig{}, true},
		{"bad scheme", WebhookConfig{URL: "ftp://example.com"}, true},
		{"no host", WebhookConfig{URL: "http://"}, true},
		{"bad trigger", WebhookConfig{URL: "https://example.com", Trigger: "sometimes"}, true},
		{"negative timeout", WebhookConfig{URL: "https://example.com", Timeout: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Pattern = `(\d+)`
			wh := tt.webhook
			cfg.Webhook = &wh

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_WebhookDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = `(\d+)`
	cfg.Webhook = &WebhookConfig{URL: "https://hooks.example.com/pctlog"}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhook.Trigger != DefaultWebhookTrigger {
		t.Errorf("Trigger = %q, want %q", cfg.Webhook.Trigger, DefaultWebhookTrigger)
	}
	if cfg.Webhook.Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Webhook.Timeout, DefaultWebhookTimeout)
	}
}
