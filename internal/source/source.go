// =============================================================================
// EVE Parser - Line Sources
// =============================================================================
//
// This module provides the line sources the pipeline reads from. Every source
// follows the same pull-based iteration:
//
//   for src.Next() {
//       line := src.Line()
//   }
//   if err := src.Err(); err != nil {
//       return err
//   }
//
// SOURCES:
//   - NewReader  : any io.Reader (standard input, strings, files)
//   - Open       : a text file on disk
//   - Lines      : an in-memory list of lines
//   - Clipboard  : the system clipboard
//   - OpenXLSX   : rows of a spreadsheet, cells joined by tabs
//   - Multi      : several sources read back to back
//
// =============================================================================

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// DefaultMaxLineBytes is the longest line a reader source accepts.
const DefaultMaxLineBytes = 1024 * 1024

// Source is a finite, ordered sequence of text lines.
type Source interface {
	Next() bool
	Line() string
	Err() error
}

// ErrClipboardEmpty is returned when the clipboard holds no text.
var ErrClipboardEmpty = errors.New("clipboard is empty")

// =============================================================================
// READER SOURCE
// =============================================================================

// ReaderSource reads newline-delimited text from an io.Reader. Both "\n"
// and "\r\n" terminators are accepted.
type ReaderSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	name    string
	line    string
	lineNo  int
	err     error
}

// NewReader creates a source over r. maxLineBytes <= 0 selects
// DefaultMaxLineBytes.
func NewReader(r io.Reader, maxLineBytes int) *ReaderSource {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	initial := 64 * 1024
	if initial > maxLineBytes {
		initial = maxLineBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)
	return &ReaderSource{scanner: scanner, name: "input"}
}

// Open creates a source over the file at path. The caller must Close it.
func Open(path string, maxLineBytes int) (*ReaderSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	src := NewReader(file, maxLineBytes)
	src.closer = file
	src.name = path
	return src, nil
}

// Lines creates a source over an in-memory list of lines.
func Lines(lines []string) *ReaderSource {
	return NewReader(strings.NewReader(strings.Join(lines, "\n")), 0)
}

// Next advances to the next line.
func (s *ReaderSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.err = fmt.Errorf("error reading %s line %d: %w", s.name, s.lineNo+1, err)
		}
		return false
	}
	s.lineNo++
	s.line = s.scanner.Text()
	return true
}

// Line returns the current line.
func (s *ReaderSource) Line() string {
	return s.line
}

// LineNumber returns the current line number (1-indexed).
func (s *ReaderSource) LineNumber() int {
	return s.lineNo
}

// Err returns any error that occurred while reading.
func (s *ReaderSource) Err() error {
	return s.err
}

// Close closes the underlying file, if any.
func (s *ReaderSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// =============================================================================
// CLIPBOARD SOURCE
// =============================================================================

// readClipboard is swapped out in tests.
var readClipboard = clipboard.ReadAll

// Clipboard creates a source over the text currently on the system
// clipboard, which is where text copied from the game window ends up.
func Clipboard() (*ReaderSource, error) {
	if clipboard.Unsupported {
		return nil, errors.New("clipboard is not supported on this platform")
	}
	text, err := readClipboard()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrClipboardEmpty
	}
	src := NewReader(strings.NewReader(text), 0)
	src.name = "clipboard"
	return src, nil
}

// =============================================================================
// MULTI SOURCE
// =============================================================================

// MultiSource reads several sources one after another and stops at the
// first error.
type MultiSource struct {
	sources []Source
	current int
	err     error
}

// Multi concatenates sources.
func Multi(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Next advances to the next line of the current source, moving on to the
// following source when one is exhausted.
func (m *MultiSource) Next() bool {
	for m.err == nil && m.current < len(m.sources) {
		src := m.sources[m.current]
		if src.Next() {
			return true
		}
		if err := src.Err(); err != nil {
			m.err = err
			return false
		}
		m.current++
	}
	return false
}

// Line returns the current line.
func (m *MultiSource) Line() string {
	if m.current >= len(m.sources) {
		return ""
	}
	return m.sources[m.current].Line()
}

// Err returns the first error encountered.
func (m *MultiSource) Err() error {
	return m.err
}
