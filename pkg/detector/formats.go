package detector

import "regexp"

// NumericField is a well-known numeric log field that pctlog can highlight.
type NumericField struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern string to pass to pctlog
	Unit       string         // Unit of the captured value, if any
	Examples   []string       // Example fragments
}

// DefaultFields returns the built-in numeric fields to detect.
// More specific patterns come first.
func DefaultFields() []*NumericField {
	fields := []*NumericField{
		{
			Name:       "JSON duration in milliseconds",
			PatternStr: `(?i)"(?:duration|latency|elapsed)_?ms"\s*:\s*(\d+)`,
			Unit:       "ms",
			Examples:   []string{`"duration_ms":42`, `"latencyMs": 7`},
		},
		{
			Name:       "Access log status",
			PatternStr: `HTTP/\d(?:\.\d)?" (\d{3}) `,
			Examples:   []string{`"GET /index.html HTTP/1.1" 200 2326`},
		},
		{
			Name:       "Access log response size",
			PatternStr: `HTTP/\d(?:\.\d)?" \d{3} (\d+)`,
			Unit:       "bytes",
			Examples:   []string{`"GET /index.html HTTP/1.1" 200 2326`},
		},
		{
			Name:       "Took N",
			PatternStr: `(?i)\btook\s+(\d+)`,
			Examples:   []string{"Took 100ms", "took 3 seconds"},
		},
		{
			Name:       "Latency field",
			PatternStr: `(?i)\blatency[=:]\s*(\d+)`,
			Examples:   []string{"latency=35", "latency: 120ms"},
		},
		{
			Name:       "Duration field",
			PatternStr: `(?i)\bduration[=:]\s*(\d+)`,
			Examples:   []string{"duration=1500"},
		},
		{
			Name:       "Elapsed field",
			PatternStr: `(?i)\belapsed[=:]\s*(\d+)`,
			Examples:   []string{"elapsed=88"},
		},
		{
			Name:       "Status field",
			PatternStr: `(?i)\bstatus[=:]\s*(\d{3})\b`,
			Examples:   []string{"status=503"},
		},
		{
			Name:       "Bytes field",
			PatternStr: `(?i)\bbytes[=:]\s*(\d+)`,
			Unit:       "bytes",
			Examples:   []string{"bytes=4096"},
		},
		{
			Name:       "Size field",
			PatternStr: `(?i)\bsize[=:]\s*(\d+)`,
			Examples:   []string{"size=512"},
		},
		{
			Name:       "Count field",
			PatternStr: `(?i)\bcount[=:]\s*(\d+)`,
			Examples:   []string{"count=17"},
		},
		{
			Name:       "Duration in microseconds",
			PatternStr: `(\d+)\s?(?:us|µs)\b`,
			Unit:       "us",
			Examples:   []string{"250us", "12 µs"},
		},
		{
			Name:       "Duration in milliseconds",
			PatternStr: `(\d+)\s?ms\b`,
			Unit:       "ms",
			Examples:   []string{"100ms", "950 ms"},
		},
		{
			Name:       "Duration in seconds",
			PatternStr: `(\d+)\s?s\b`,
			Unit:       "s",
			Examples:   []string{"3s", "12 s"},
		},
	}

	// Compile all patterns
	for _, f := range fields {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return fields
}
