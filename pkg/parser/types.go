// Package parser reads log input line by line from files or a stream.
package parser

import "errors"

// ErrInputAcquisition is wrapped by every error caused by opening or
// reading an input source.
var ErrInputAcquisition = errors.New("input acquisition failed")

// LogLine is one line of input with its terminator removed.
type LogLine struct {
	// Content is the raw line text.
	Content string

	// Source is the file path (or stream name) this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}
