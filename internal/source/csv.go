package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVSource reads the records of a delimited file as lines, with fields
// joined by tabs. Exported inventory tables therefore read like rows copied
// straight out of the client.
type CSVSource struct {
	file   *os.File
	reader *csv.Reader
	line   string
	row    int
	err    error
}

// OpenCSV opens a delimited file. The delimiter accepts a single character
// or one of the names "tab", "pipe" and "semicolon"; empty means comma.
// The caller must Close the source.
func OpenCSV(path, delimiter string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	src := NewCSV(bufio.NewReader(file), delimiter)
	src.file = file
	return src, nil
}

// NewCSV creates a source over delimited text read from r.
func NewCSV(r io.Reader, delimiter string) *CSVSource {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter(delimiter)
	// Rows in a pasted export do not share a column count.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	return &CSVSource{reader: reader}
}

// Delimiter resolves a configured delimiter name to its rune.
func Delimiter(name string) rune {
	switch name {
	case "\\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	case "":
		return ','
	}
	return []rune(name)[0]
}

// Next advances to the next record.
func (s *CSVSource) Next() bool {
	if s.err != nil {
		return false
	}

	record, err := s.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = fmt.Errorf("error reading row %d: %w", s.row+1, err)
		return false
	}

	s.row++
	s.line = joinCells(record)
	return true
}

// Line returns the current record joined by tabs.
func (s *CSVSource) Line() string {
	return s.line
}

// RowNumber returns the current record number (1-indexed).
func (s *CSVSource) RowNumber() int {
	return s.row
}

// Err returns any error that occurred while reading.
func (s *CSVSource) Err() error {
	return s.err
}

// Close closes the underlying file, if any.
func (s *CSVSource) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
