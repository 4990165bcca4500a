package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/pctlog/pkg/pipeline"
)

func createTestReport() *Report {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	result := &pipeline.Result{
		ID:           "run-1",
		LinesRead:    6,
		LinesMatched: 5,
		LinesEmitted: 6,
		Values:       []uint64{100, 950, 50, 10, 5},
		Sources:      []string{"app.log"},
		StartTime:    start,
		EndTime:      start.Add(15 * time.Millisecond),
	}
	return NewReport(result, `Took (\d+)ms`, "percentile")
}

func TestNewReport(t *testing.T) {
	report := createTestReport()

	assert.Equal(t, Summary{LinesRead: 6, LinesMatched: 5, LinesEmitted: 6}, report.Summary)
	require.True(t, report.HasSamples())
	assert.Equal(t, &Percentiles{Samples: 5, Min: 5, P50: 50, P90: 100, P99: 100, Max: 950}, report.Percentiles)
	assert.Equal(t, 15*time.Millisecond, report.Metadata.Duration)
	assert.Equal(t, []string{"app.log"}, report.Metadata.Sources)
	assert.Equal(t, "run-1", report.Metadata.RunID)
}

func TestNewReport_NoSamples(t *testing.T) {
	report := NewReport(&pipeline.Result{LinesRead: 3}, `(\d+)`, "bold")
	assert.False(t, report.HasSamples())
	assert.Nil(t, report.Percentiles)
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml"} {
		f, err := NewFormatter(name, FormatOptions{})
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	f, err := NewFormatter("", FormatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "text", f.Name())

	_, err = NewFormatter("xml", FormatOptions{})
	assert.Error(t, err)
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, "=== pctlog summary ===")
	assert.Contains(t, out, "Lines: 6 read, 5 matched, 6 written")
	assert.Contains(t, out, "Samples: 5")
	assert.Contains(t, out, "  p50  50\n")
	assert.Contains(t, out, "  p90  100\n")
	assert.Contains(t, out, "  p99  100\n")
	assert.Contains(t, out, "  max  950\n")
	assert.NotContains(t, out, "\x1b[", "no color requested")
	assert.NotContains(t, out, "Duration")
}

func TestTextFormatter_Format_Color(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Color: true})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Sources: app.log")
	assert.Contains(t, out, "Mode: percentile")
	assert.Contains(t, out, "Duration: 15ms")
}

func TestTextFormatter_Format_NoSamples(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := NewReport(&pipeline.Result{LinesRead: 2, LinesEmitted: 2}, `(\d+)`, "percentile")

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), report, &buf))
	assert.Contains(t, buf.String(), "Samples: 0 (no percentiles)")
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))
	assert.Equal(t, "pctlog: 6 lines, 5 samples, p50=50 p90=100 p99=100\n", buf.String())

	buf.Reset()
	report := NewReport(&pipeline.Result{LinesRead: 2}, `(\d+)`, "percentile")
	require.NoError(t, f.Format(context.Background(), report, &buf))
	assert.Equal(t, "pctlog: 2 lines, 0 samples\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	percentiles, ok := decoded["percentiles"].(map[string]interface{})
	require.True(t, ok, "percentiles object missing: %s", buf.String())
	assert.Equal(t, float64(50), percentiles["p50"])
	assert.Equal(t, float64(950), percentiles["max"])

	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, float64(5), summary["lines_matched"])
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))

	var p Percentiles
	require.NoError(t, json.Unmarshal(buf.Bytes(), &p))
	assert.Equal(t, uint64(100), p.P99)
}

func TestQuietFormatters_NoSamples(t *testing.T) {
	report := NewReport(&pipeline.Result{LinesRead: 2}, `(\d+)`, "percentile")
	require.False(t, report.HasSamples())

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(FormatOptions{Quiet: true}).Format(context.Background(), report, &buf))
	assert.NotContains(t, buf.String(), "null")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(0), decoded["samples"])

	buf.Reset()
	require.NoError(t, NewYAMLFormatter(FormatOptions{Quiet: true}).Format(context.Background(), report, &buf))
	assert.Contains(t, buf.String(), "samples: 0")
	assert.NotContains(t, buf.String(), "null")
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := NewYAMLFormatter(FormatOptions{})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), createTestReport(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "summary:\n"), out)
	assert.Contains(t, out, "duration: 15ms")

	var decoded struct {
		Percentiles Percentiles `yaml:"percentiles"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, uint64(50), decoded.Percentiles.P50)
	assert.Equal(t, 5, decoded.Percentiles.Samples)
}
