// Package style wraps the captured number of a log line in terminal emphasis.
package style

import (
	"strings"

	"github.com/fatih/color"

	"github.com/ccollicutt/pctlog/pkg/percentile"
)

// Mode selects how matched numbers are emphasized.
type Mode int

const (
	// ModePercentile styles each match by its percentile band (default).
	ModePercentile Mode = iota
	// ModeHighlight applies one fixed highlight to every match.
	ModeHighlight
	// ModeBold makes every match bold.
	ModeBold
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeHighlight:
		return "highlight"
	case ModeBold:
		return "bold"
	default:
		return "percentile"
	}
}

// NeedsBoundaries reports whether the mode depends on percentile boundaries.
func (m Mode) NeedsBoundaries() bool {
	return m == ModePercentile
}

// ParseMode maps the --bold and --highlight flags to a Mode.
// Highlight takes precedence when both are set.
func ParseMode(bold, highlight bool) Mode {
	switch {
	case highlight:
		return ModeHighlight
	case bold:
		return ModeBold
	default:
		return ModePercentile
	}
}

// scheme holds the colors used for each emphasis level.
type scheme struct {
	p50       *color.Color
	p90       *color.Color
	p99       *color.Color
	highlight *color.Color
	bold      *color.Color
}

func newScheme() *scheme {
	return &scheme{
		p50:       color.New(color.FgYellow),
		p90:       color.New(color.FgRed, color.Bold),
		p99:       color.New(color.FgHiWhite, color.BgRed, color.Bold),
		highlight: color.New(color.FgYellow),
		bold:      color.New(color.Bold),
	}
}

func (s *scheme) all() []*color.Color {
	return []*color.Color{s.p50, s.p90, s.p99, s.highlight, s.bold}
}

// Styler renders lines with emphasis markers around the captured number.
type Styler struct {
	mode   Mode
	colors *scheme
}

// Option configures a Styler.
type Option func(*Styler)

// WithColor forces emphasis markers on or off, overriding the terminal
// detection done by fatih/color.
func WithColor(enabled bool) Option {
	return func(s *Styler) {
		for _, c := range s.colors.all() {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// New creates a Styler for the given mode.
func New(mode Mode, opts ...Option) *Styler {
	s := &Styler{
		mode:   mode,
		colors: newScheme(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the styler's emphasis mode.
func (s *Styler) Mode() Mode {
	return s.mode
}

// Render returns line with line[start:end] wrapped in the style for band.
// A negative start marks a non-matching line, which is returned unchanged.
func (s *Styler) Render(line string, start, end int, band percentile.Band) string {
	if start < 0 || end < start || end > len(line) {
		return line
	}

	c := s.colorFor(band)
	if c == nil {
		return line
	}

	var sb strings.Builder
	sb.Grow(len(line) + 16)
	sb.WriteString(line[:start])
	sb.WriteString(c.Sprint(line[start:end]))
	sb.WriteString(line[end:])
	return sb.String()
}

// colorFor returns the color for band under the current mode, or nil when
// the span stays unstyled.
func (s *Styler) colorFor(band percentile.Band) *color.Color {
	switch s.mode {
	case ModeHighlight:
		return s.colors.highlight
	case ModeBold:
		return s.colors.bold
	}

	switch band {
	case percentile.P50:
		return s.colors.p50
	case percentile.P90:
		return s.colors.p90
	case percentile.P99:
		return s.colors.p99
	default:
		return nil
	}
}
