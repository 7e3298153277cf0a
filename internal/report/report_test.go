package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/eve-parser/internal/totals"
	"github.com/xuri/excelize/v2"
)

var sample = []totals.Entry{
	{Name: "Tritanium", Total: 2000},
	{Name: "Pyerite", Total: 500},
	{Name: "Isogen", Total: 0},
	{Name: "Nocxium", Total: -1},
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, DefaultOptions()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "2000 Tritanium\n500 Pyerite\n0 Isogen\n-1 Nocxium\n"
	if buf.String() != want {
		t.Errorf("text report = %q, want %q", buf.String(), want)
	}
}

func TestWriteSkipZero(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.SkipZero = true
	if err := Write(&buf, sample, opts); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if strings.Contains(buf.String(), "Isogen") {
		t.Errorf("zero total not skipped: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "-1 Nocxium") {
		t.Errorf("negative total dropped: %q", buf.String())
	}
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	entries := []totals.Entry{
		{Name: "Tritanium", Total: 2000},
		{Name: "R&D <Core>", Total: -1},
	}
	if err := Write(&buf, entries, Options{Format: "xml"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<totals items="2">
  <item n="1" name="Tritanium">2000</item>
  <item n="2" name="R&amp;D &lt;Core&gt;">-1</item>
</totals>
`
	if buf.String() != want {
		t.Errorf("xml report =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteXMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, nil, "  "); err != nil {
		t.Fatalf("WriteXML() error = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "<totals items=\"0\"/>\n") {
		t.Errorf("xml report = %q", buf.String())
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample, Options{Format: "xlsx", SheetName: "Materials"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Materials")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	want := [][]string{
		{"Item", "Total"},
		{"Tritanium", "2000"},
		{"Pyerite", "500"},
		{"Isogen", "0"},
		{"Nocxium", "-1"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sample, Options{Format: "pdf"}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{"text": "txt", "xml": "xml", "xlsx": "xlsx", "": "txt"}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}
