package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pctlog/pkg/detector"
)

const latencyLog = `level=info msg="request served" latency=35
level=info msg="request served" latency=120
level=warn msg="slow request" latency=980
level=info msg="request served" latency=42
level=info msg="cache warm"
`

func executeDetect(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewDetectCommand()
	var buf bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestDetectOptions_Defaults(t *testing.T) {
	cmd := NewDetectCommand()

	if cmd.Use != "detect [log-file]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if got := cmd.Flags().Lookup("output").DefValue; got != "text" {
		t.Errorf("output default = %q, want text", got)
	}
	if got := cmd.Flags().Lookup("sample").DefValue; got != "100" {
		t.Errorf("sample default = %q, want 100", got)
	}
	if cmd.Flags().Lookup("all") == nil {
		t.Error("Missing flag: all")
	}
}

func TestRunDetect_TextFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(latencyLog), 0644); err != nil {
		t.Fatalf("Failed to create log file: %v", err)
	}

	out, err := executeDetect(t, "", path)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	checks := []string{
		"Source: " + path,
		"Lines sampled: 5",
		"Detected Field: Latency field",
		"Coverage: 80.0% (4/5 lines matched)",
		"Captured: 35",
		"pctlog '(?i)\\blatency[=:]\\s*(\\d+)' --file " + path,
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("output missing %q:\n%s", check, out)
		}
	}
}

func TestRunDetect_Stdin(t *testing.T) {
	out, err := executeDetect(t, latencyLog)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !strings.Contains(out, "Source: stdin") {
		t.Errorf("output missing stdin source:\n%s", out)
	}
	if !strings.Contains(out, "--file <log-file>") {
		t.Errorf("suggested command should use a placeholder:\n%s", out)
	}
}

func TestRunDetect_NoMatch(t *testing.T) {
	out, err := executeDetect(t, "nothing to see\nhere either\n")
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !strings.Contains(out, "No numeric field detected.") {
		t.Errorf("output missing no-match message:\n%s", out)
	}
}

func TestRunDetect_JSON(t *testing.T) {
	out, err := executeDetect(t, latencyLog, "-o", "json")
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	var decoded DetectOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded.Source != "stdin" || decoded.SampledLines != 5 {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1 without --all", len(decoded.Matches))
	}

	m := decoded.Matches[0]
	if m.Name != "Latency field" || m.MatchCount != 4 {
		t.Errorf("match = %+v", m)
	}
	// Sorted samples: 35 42 120 980
	if m.P50 != 42 || m.P90 != 120 || m.P99 != 120 || m.Max != 980 {
		t.Errorf("percentiles = %d/%d/%d max %d", m.P50, m.P90, m.P99, m.Max)
	}
}

func TestRunDetect_YAML(t *testing.T) {
	out, err := executeDetect(t, latencyLog, "--output", "yaml")
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	var decoded DetectOutput
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if len(decoded.Matches) != 1 || decoded.Matches[0].SampleValue != 35 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRunDetect_All(t *testing.T) {
	lines := "Took 100ms\nTook 950ms\nTook 50ms\n"
	out, err := executeDetect(t, lines, "-o", "json", "--all")
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	var decoded DetectOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Matches) < 2 {
		t.Fatalf("expected alternatives with --all, got %d", len(decoded.Matches))
	}
	if decoded.Matches[0].Name != "Took N" {
		t.Errorf("best match = %q, want Took N", decoded.Matches[0].Name)
	}
}

func TestRunDetect_InvalidOutput(t *testing.T) {
	_, err := executeDetect(t, latencyLog, "-o", "xml")
	if err == nil {
		t.Error("Expected error for unknown output format")
	}
}

func TestRunDetect_MissingFile(t *testing.T) {
	_, err := executeDetect(t, "", "/nonexistent/app.log")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewDetectOutput_BestOnly(t *testing.T) {
	d := detector.New()
	result := d.DetectFromLines([]string{"Took 5ms", "Took 7ms"})

	all := newDetectOutput(result, "x.log", &DetectOptions{ShowAll: true})
	best := newDetectOutput(result, "x.log", &DetectOptions{})

	if len(best.Matches) != 1 {
		t.Errorf("len(best.Matches) = %d, want 1", len(best.Matches))
	}
	if len(all.Matches) != len(result.Matches) {
		t.Errorf("len(all.Matches) = %d, want %d", len(all.Matches), len(result.Matches))
	}
}
