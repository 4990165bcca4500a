// Package detector suggests capture patterns for the numeric fields found in
// a sample of log lines.
package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ccollicutt/pctlog/pkg/matcher"
	"github.com/ccollicutt/pctlog/pkg/parser"
	"github.com/ccollicutt/pctlog/pkg/percentile"
)

// DefaultSampleSize is the number of lines sampled when no size is given.
const DefaultSampleSize = 100

// DetectionResult holds the result of analyzing a sample of log lines.
type DetectionResult struct {
	Matches      []FieldMatch // Fields that matched, sorted by coverage descending
	SampledLines int          // Number of lines sampled
}

// FieldMatch represents a field that matched with its coverage.
type FieldMatch struct {
	Field       *NumericField
	Coverage    float64          // 0.0 to 1.0 (share of sampled lines matched)
	MatchCount  int              // Number of lines that matched
	SampleLine  string           // Example line that matched
	SampleValue uint64           // Number captured from SampleLine
	Stats       percentile.Stats // Distribution of the sampled values
}

// Detector samples log lines to identify numeric fields.
type Detector struct {
	fields     []*NumericField
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithFields replaces the built-in field catalog.
func WithFields(fields []*NumericField) Option {
	return func(d *Detector) {
		d.fields = fields
	}
}

// New creates a new Detector with default fields.
func New(opts ...Option) *Detector {
	d := &Detector{
		fields:     DefaultFields(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples a log file and returns detected fields.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", parser.ErrInputAcquisition, path, err)
	}
	defer file.Close()

	return d.DetectFromReader(ctx, file)
}

// DetectFromReader samples lines from r and returns detected fields.
func (d *Detector) DetectFromReader(ctx context.Context, r io.Reader) (*DetectionResult, error) {
	lines, err := d.sample(ctx, r)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	for _, field := range d.fields {
		m := matcher.New(field.Pattern)

		var match *FieldMatch
		var values []uint64
		for _, line := range lines {
			e := m.Match(line)
			if !e.OK {
				continue
			}
			if match == nil {
				match = &FieldMatch{
					Field:       field,
					SampleLine:  line,
					SampleValue: e.Value,
				}
			}
			values = append(values, e.Value)
		}

		if match == nil {
			continue
		}
		match.MatchCount = len(values)
		match.Coverage = float64(len(values)) / float64(len(lines))
		match.Stats = percentile.Summarize(values)
		result.Matches = append(result.Matches, *match)
	}

	// Sort by coverage descending, then by pattern length (more specific first)
	sort.SliceStable(result.Matches, func(i, j int) bool {
		if result.Matches[i].Coverage != result.Matches[j].Coverage {
			return result.Matches[i].Coverage > result.Matches[j].Coverage
		}
		return len(result.Matches[i].Field.PatternStr) > len(result.Matches[j].Field.PatternStr)
	})

	return result
}

// sample reads up to sampleSize non-blank lines from r.
func (d *Detector) sample(ctx context.Context, r io.Reader) ([]string, error) {
	var lines []string
	source := parser.NewReaderSource(r, "sample")
	defer source.Close()

	for len(lines) < d.sampleSize {
		line, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line.Content) != "" {
			lines = append(lines, line.Content)
		}
	}

	return lines, nil
}

// BestMatch returns the highest coverage match, or nil if none found.
func (r *DetectionResult) BestMatch() *FieldMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one field matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
