// Package matcher extracts a numeric capture from individual log lines.
package matcher

import (
	"fmt"
	"regexp"
	"strconv"
)

// Extracted pairs a log line with the number captured from it, if any.
type Extracted struct {
	// Line is the original line content, never modified.
	Line string

	// Value is the captured number. Only meaningful when OK is true.
	Value uint64

	// Start and End are the byte offsets of the captured text in Line.
	// Both are -1 when OK is false.
	Start int
	End   int

	// OK reports whether the line produced a numeric capture.
	OK bool
}

// Span returns the byte range of the captured text, or (-1, -1) for a non-match.
func (e Extracted) Span() (int, int) {
	return e.Start, e.End
}

// Matcher applies a compiled pattern to log lines.
type Matcher struct {
	pattern *regexp.Regexp
	group   int
}

// New creates a Matcher from a compiled pattern.
// The first capture group holds the number; a pattern without groups
// uses the whole match instead. Additional groups are ignored.
func New(pattern *regexp.Regexp) *Matcher {
	group := 0
	if pattern.NumSubexp() > 0 {
		group = 1
	}
	return &Matcher{
		pattern: pattern,
		group:   group,
	}
}

// Compile compiles pattern and returns a Matcher for it.
func Compile(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return New(re), nil
}

// Pattern returns the underlying regular expression.
func (m *Matcher) Pattern() *regexp.Regexp {
	return m.pattern
}

// Group returns the index of the capture group used for the number
// (0 means the whole match).
func (m *Matcher) Group() int {
	return m.group
}

// Match applies the pattern to line. Only the leftmost match is used.
// A capture that is absent or not a non-negative integer counts as no match.
func (m *Matcher) Match(line string) Extracted {
	miss := Extracted{Line: line, Start: -1, End: -1}

	loc := m.pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return miss
	}

	start, end := loc[2*m.group], loc[2*m.group+1]
	if start < 0 {
		// group did not participate in the match
		return miss
	}

	v, ok := ParseValue(line[start:end])
	if !ok {
		return miss
	}

	return Extracted{
		Line:  line,
		Value: v,
		Start: start,
		End:   end,
		OK:    true,
	}
}

// ParseValue parses captured text as an unsigned decimal integer.
// It reports false instead of returning an error.
func ParseValue(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
