// Package pipeline buffers log input, classifies captured numbers by
// percentile and writes the styled, filtered or sorted result.
package pipeline

import (
	"time"

	"github.com/ccollicutt/pctlog/pkg/matcher"
	"github.com/ccollicutt/pctlog/pkg/percentile"
)

// State is a stage of a pipeline run.
type State int

const (
	StateLoading State = iota
	StateMatching
	StateClassifying
	StateArranging
	StateEmitting
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMatching:
		return "matching"
	case StateClassifying:
		return "classifying"
	case StateArranging:
		return "arranging"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Record is one input line after matching and classification.
type Record struct {
	matcher.Extracted

	// Source is the file or stream the line came from.
	Source string

	// LineNum is the 1-based line number in Source.
	LineNum int

	// Band is the percentile band, Unclassified for non-matches or when
	// classification was skipped.
	Band percentile.Band
}

// Result describes a completed run.
type Result struct {
	// ID uniquely identifies the run.
	ID string

	// LinesRead is the number of input lines.
	LinesRead int

	// LinesMatched is the number of lines with a numeric capture.
	LinesMatched int

	// LinesEmitted is the number of lines written to the output.
	LinesEmitted int

	// Boundaries are the percentile thresholds. Unset when classification
	// was skipped or nothing matched.
	Boundaries percentile.Boundaries

	// Values are the captured numbers in input order.
	Values []uint64

	// Sources lists the inputs in the order they were first seen.
	Sources []string

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
