// =============================================================================
// EVE Parser - Report Writer Module
// =============================================================================
//
// This module renders item totals in one of three formats.
//
// TEXT:
//   2000 Tritanium
//   500 Pyerite
//   -1 Nocxium
//
// XML:
//   <?xml version="1.0" encoding="UTF-8"?>
//   <totals items="3">
//     <item n="1" name="Tritanium">2000</item>
//     <item n="2" name="Pyerite">500</item>
//     <item n="3" name="Nocxium">-1</item>
//   </totals>
//
// XLSX:
//   One sheet with a bold "Item" / "Total" header row followed by one row per
//   item.
//
// =============================================================================

package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/ginjaninja78/eve-parser/internal/totals"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options contains report rendering options.
type Options struct {
	// Format is "text", "xml" or "xlsx".
	Format string

	// Indent is the XML indentation string.
	// Default: "  "
	Indent string

	// SheetName is the XLSX sheet name.
	// Default: "Totals"
	SheetName string

	// SkipZero omits items whose total is zero.
	SkipZero bool
}

// DefaultOptions returns text output with default settings.
func DefaultOptions() Options {
	return Options{
		Format:    "text",
		Indent:    "  ",
		SheetName: "Totals",
	}
}

// Extension returns the file extension used for a format.
func Extension(format string) string {
	switch format {
	case "xml":
		return "xml"
	case "xlsx":
		return "xlsx"
	default:
		return "txt"
	}
}

// =============================================================================
// WRITE
// =============================================================================

// Write renders entries to w in the format selected by opts.
func Write(w io.Writer, entries []totals.Entry, opts Options) error {
	if opts.SkipZero {
		entries = skipZero(entries)
	}

	switch opts.Format {
	case "", "text":
		return WriteText(w, entries)
	case "xml":
		indent := opts.Indent
		if indent == "" {
			indent = "  "
		}
		return WriteXML(w, entries, indent)
	case "xlsx":
		sheet := opts.SheetName
		if sheet == "" {
			sheet = "Totals"
		}
		return WriteXLSX(w, entries, sheet)
	default:
		return fmt.Errorf("unsupported report format %q", opts.Format)
	}
}

// skipZero drops entries whose total is zero.
func skipZero(entries []totals.Entry) []totals.Entry {
	kept := make([]totals.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Total != 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

// WriteText writes one "<total> <name>" line per entry.
func WriteText(w io.Writer, entries []totals.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e.String()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// =============================================================================
// XML
// =============================================================================

// element is a minimal XML node: attributes in order plus either a text
// value or children.
type element struct {
	name     string
	attrs    [][2]string
	value    string
	children []element
}

// WriteXML writes the totals as an indented XML document.
func WriteXML(w io.Writer, entries []totals.Entry, indent string) error {
	root := element{
		name:  "totals",
		attrs: [][2]string{{"items", strconv.Itoa(len(entries))}},
	}
	for i, e := range entries {
		root.children = append(root.children, element{
			name: "item",
			attrs: [][2]string{
				{"n", strconv.Itoa(i + 1)},
				{"name", e.Name},
			},
			value: strconv.FormatInt(e.Total, 10),
		})
	}

	var buffer bytes.Buffer
	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeElement(&buffer, root, indent, 0)

	if _, err := w.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// writeElement writes an element and its children with indentation.
func writeElement(buffer *bytes.Buffer, el element, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(el.name)
	for _, attr := range el.attrs {
		fmt.Fprintf(buffer, " %s=\"%s\"", attr[0], escapeXML(attr[1]))
	}

	if len(el.children) == 0 && el.value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")
	if el.value != "" {
		buffer.WriteString(escapeXML(el.value))
	} else {
		buffer.WriteString("\n")
		for _, child := range el.children {
			writeElement(buffer, child, indent, level+1)
		}
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(el.name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// =============================================================================
// XLSX
// =============================================================================

// WriteXLSX writes the totals as a workbook with a single sheet.
func WriteXLSX(w io.Writer, entries []totals.Entry, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Item", "Total"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.Name, e.Total}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
