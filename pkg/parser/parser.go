package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// readBufferSize is the initial read buffer. Longer lines grow past it.
const readBufferSize = 64 * 1024

// FileSource implements LineSource for reading log files one after another.
type FileSource struct {
	files []string

	currentFile   *os.File
	currentReader *lineReader
	currentSource string
	currentLine   int
	fileIndex     int
}

// NewFileSource creates a LineSource that reads the given files in order.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// Next returns the next line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentReader == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		content, err := s.currentReader.next()
		if err == nil {
			s.currentLine++
			return &LogLine{
				Content: content,
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrInputAcquisition, s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrInputAcquisition, path, err)
	}

	s.currentFile = f
	s.currentReader = newLineReader(f)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentReader = nil
		return err
	}
	return nil
}

// ReaderSource implements LineSource over an io.Reader such as standard input.
// Closing it does not close the reader.
type ReaderSource struct {
	name   string
	reader *lineReader
	line   int
}

// NewReaderSource creates a LineSource reading from r. name is recorded as
// the Source of every line.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{
		name:   name,
		reader: newLineReader(r),
	}
}

// Next returns the next line, or io.EOF once the reader is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := s.reader.next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInputAcquisition, s.name, err)
	}

	s.line++
	return &LogLine{
		Content: content,
		Source:  s.name,
		LineNum: s.line,
	}, nil
}

// Close is a no-op.
func (s *ReaderSource) Close() error {
	return nil
}

// lineReader splits input on '\n' with no limit on line length.
type lineReader struct {
	r    *bufio.Reader
	done bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// next returns the next line with its "\n" or "\r\n" terminator removed.
// A final line without a terminator is still returned. It returns io.EOF
// once the input is exhausted.
func (l *lineReader) next() (string, error) {
	if l.done {
		return "", io.EOF
	}

	line, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", io.EOF
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
