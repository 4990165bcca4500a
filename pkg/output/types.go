// Package output formats the summary report of a pctlog run.
package output

import (
	"time"

	"github.com/ccollicutt/pctlog/pkg/percentile"
	"github.com/ccollicutt/pctlog/pkg/pipeline"
)

// Report is the complete run summary.
type Report struct {
	// Summary provides line counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// Percentiles describes the captured values. Nil when nothing matched.
	Percentiles *Percentiles `json:"percentiles,omitempty" yaml:"percentiles,omitempty"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Summary provides line counts.
type Summary struct {
	LinesRead    int `json:"lines_read" yaml:"lines_read"`
	LinesMatched int `json:"lines_matched" yaml:"lines_matched"`
	LinesEmitted int `json:"lines_emitted" yaml:"lines_emitted"`
}

// Percentiles summarizes the distribution of captured values.
type Percentiles struct {
	Samples int    `json:"samples" yaml:"samples"`
	Min     uint64 `json:"min" yaml:"min"`
	P50     uint64 `json:"p50" yaml:"p50"`
	P90     uint64 `json:"p90" yaml:"p90"`
	P99     uint64 `json:"p99" yaml:"p99"`
	Max     uint64 `json:"max" yaml:"max"`
}

// Metadata provides context about the run.
type Metadata struct {
	// RunID identifies the run that produced the report.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	// Pattern is the expression used to capture numbers.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Mode is the emphasis mode name.
	Mode string `json:"mode" yaml:"mode"`

	// Sources lists the inputs that were read.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
}

// NewReport creates a Report from a pipeline result.
func NewReport(result *pipeline.Result, pattern, mode string) *Report {
	report := &Report{
		Summary: Summary{
			LinesRead:    result.LinesRead,
			LinesMatched: result.LinesMatched,
			LinesEmitted: result.LinesEmitted,
		},
		Metadata: Metadata{
			RunID:    result.ID,
			Pattern:  pattern,
			Mode:     mode,
			Sources:  result.Sources,
			Duration: result.Duration(),
		},
	}

	stats := percentile.Summarize(result.Values)
	if stats.Samples > 0 {
		report.Percentiles = &Percentiles{
			Samples: stats.Samples,
			Min:     stats.Min,
			P50:     stats.Boundaries.P50,
			P90:     stats.Boundaries.P90,
			P99:     stats.Boundaries.P99,
			Max:     stats.Max,
		}
	}

	return report
}

// quietPercentiles returns the percentiles for one-line output. A run
// without samples yields zero values with Samples set to 0, never nil.
func (r *Report) quietPercentiles() *Percentiles {
	if r.Percentiles == nil {
		return &Percentiles{}
	}
	return r.Percentiles
}

// HasSamples returns true if at least one line produced a number.
func (r *Report) HasSamples() bool {
	return r.Percentiles != nil
}
