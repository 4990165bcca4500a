package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/pctlog/pkg/config"
	"github.com/ccollicutt/pctlog/pkg/matcher"
	"github.com/ccollicutt/pctlog/pkg/parser"
	"github.com/ccollicutt/pctlog/pkg/percentile"
	"github.com/ccollicutt/pctlog/pkg/style"
)

// Pipeline runs the load, match, classify, arrange and emit stages over
// one input source.
type Pipeline struct {
	matcher *matcher.Matcher
	styler  *style.Styler

	// Options
	order        config.Order
	matchingOnly bool
	classify     bool
	onState      func(State)
}

// Option configures pipeline behavior.
type Option func(*Pipeline)

// WithOrder sorts matching lines by captured number and drops the rest.
func WithOrder(order config.Order) Option {
	return func(p *Pipeline) {
		p.order = order
	}
}

// WithMatchingOnly drops lines without a numeric capture, keeping order.
func WithMatchingOnly(v bool) Option {
	return func(p *Pipeline) {
		p.matchingOnly = v
	}
}

// WithClassify forces percentile classification on or off. By default it
// runs only when the styler's mode needs boundaries.
func WithClassify(v bool) Option {
	return func(p *Pipeline) {
		p.classify = v
	}
}

// WithStateHook registers fn to be called on every state transition.
func WithStateHook(fn func(State)) Option {
	return func(p *Pipeline) {
		p.onState = fn
	}
}

// New creates a pipeline.
func New(m *matcher.Matcher, s *style.Styler, opts ...Option) *Pipeline {
	p := &Pipeline{
		matcher:  m,
		styler:   s,
		classify: s.Mode().NeedsBoundaries(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromConfig creates a pipeline for a validated run configuration.
func FromConfig(cfg *config.RunConfig, s *style.Styler) *Pipeline {
	return New(cfg.Matcher(), s,
		WithOrder(cfg.Order),
		WithMatchingOnly(cfg.MatchingOnly),
	)
}

// Run reads src to completion, then writes the arranged and styled lines to w.
// Nothing is written if reading fails.
func (p *Pipeline) Run(ctx context.Context, src parser.LineSource, w io.Writer) (*Result, error) {
	result := &Result{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
	}

	p.enter(StateLoading)
	lines, err := p.load(ctx, src, result)
	if err != nil {
		return nil, err
	}

	p.enter(StateMatching)
	records := p.match(lines, result)

	if p.classify {
		p.enter(StateClassifying)
		result.Boundaries = percentile.Compute(result.Values)
		for i := range records {
			if records[i].OK {
				records[i].Band = percentile.Classify(records[i].Value, result.Boundaries)
			}
		}
	}

	p.enter(StateArranging)
	records = p.arrange(records)

	p.enter(StateEmitting)
	if err := p.emit(records, w); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	result.LinesEmitted = len(records)

	result.EndTime = time.Now()
	p.enter(StateDone)

	return result, nil
}

func (p *Pipeline) enter(s State) {
	if p.onState != nil {
		p.onState(s)
	}
}

// load buffers every line of src.
func (p *Pipeline) load(ctx context.Context, src parser.LineSource, result *Result) ([]*parser.LogLine, error) {
	seen := make(map[string]bool)
	var lines []*parser.LogLine

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}

		if !seen[line.Source] {
			seen[line.Source] = true
			result.Sources = append(result.Sources, line.Source)
		}
		lines = append(lines, line)
	}

	result.LinesRead = len(lines)
	return lines, nil
}

func (p *Pipeline) match(lines []*parser.LogLine, result *Result) []Record {
	records := make([]Record, len(lines))
	for i, line := range lines {
		records[i] = Record{
			Extracted: p.matcher.Match(line.Content),
			Source:    line.Source,
			LineNum:   line.LineNum,
		}
		if records[i].OK {
			result.Values = append(result.Values, records[i].Value)
		}
	}
	result.LinesMatched = len(result.Values)
	return records
}

// arrange applies the matching-only filter or the stable sort.
func (p *Pipeline) arrange(records []Record) []Record {
	if !p.matchingOnly && p.order == config.OrderNone {
		return records
	}

	kept := records[:0]
	for _, r := range records {
		if r.OK {
			kept = append(kept, r)
		}
	}

	switch p.order {
	case config.OrderAsc:
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Value < kept[j].Value })
	case config.OrderDesc:
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Value > kept[j].Value })
	}

	return kept
}

func (p *Pipeline) emit(records []Record, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		start, end := r.Span()
		if _, err := bw.WriteString(p.styler.Render(r.Line, start, end, r.Band)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
