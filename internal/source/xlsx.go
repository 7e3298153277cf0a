package source

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads the rows of one worksheet as lines. The cells of a row
// are joined with tabs, so an inventory window pasted into a spreadsheet
// reads back the same way it was copied.
type XLSXSource struct {
	file  *excelize.File
	rows  *excelize.Rows
	sheet string
	line  string
	row   int
	err   error
}

// OpenXLSX opens a workbook and iterates the named sheet. An empty sheet
// name selects the first sheet. The caller must Close the source.
func OpenXLSX(path, sheet string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			f.Close()
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return &XLSXSource{file: f, rows: rows, sheet: sheet}, nil
}

// Next advances to the next row.
func (s *XLSXSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			s.err = fmt.Errorf("error reading sheet %q: %w", s.sheet, err)
		}
		return false
	}
	s.row++

	cells, err := s.rows.Columns()
	if err != nil {
		s.err = fmt.Errorf("error reading sheet %q row %d: %w", s.sheet, s.row, err)
		return false
	}
	s.line = joinCells(cells)
	return true
}

// Line returns the current row joined by tabs.
func (s *XLSXSource) Line() string {
	return s.line
}

// Err returns any error that occurred while reading.
func (s *XLSXSource) Err() error {
	return s.err
}

// Close releases the row iterator and the workbook.
func (s *XLSXSource) Close() error {
	rowsErr := s.rows.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return rowsErr
}

// joinCells drops trailing empty cells and joins the rest with tabs.
func joinCells(cells []string) string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return strings.Join(cells[:end], "\t")
}
