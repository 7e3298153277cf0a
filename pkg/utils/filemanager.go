// =============================================================================
// EVE Parser - File Manager Utility
// =============================================================================
//
// This module provides file utilities for writing reports:
//   - Output directory management
//   - Unique report file naming
//   - Run summary logs written next to a report
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {ext}       - Report extension (from params)
//   - params: Extra placeholder values, keyed without braces.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "totals_{timestamp}_{uuid}.{ext}"
//   params: {"ext": "xml"}
//   output: "totals_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xml"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now(), uuid.New())
}

func generateOutputFileName(format string, params map[string]string, now time.Time, id uuid.UUID) string {
	replacements := map[string]string{
		"{uuid}":      id.String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Ensure the extension is present when the format omitted {ext}.
	if ext := params["ext"]; ext != "" && !strings.HasSuffix(strings.ToLower(result), "."+ext) {
		result += "." + ext
	}

	return result
}

// =============================================================================
// SUMMARY LOG GENERATION
// =============================================================================

// RunSummary contains statistics about one parsing run.
type RunSummary struct {
	StartTime    time.Time
	EndTime      time.Time
	Inputs       []string
	ReportFile   string
	LinesRead    int
	LinesMatched int
	LinesSkipped int
	Items        int
	ByGrammar    map[string]int
}

// WriteSummaryLog writes a run summary to a text file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	timestamp := summary.EndTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "EVE Parser - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Report:         %s\n\n"+
		"Statistics:\n"+
		"  Lines Read:     %d\n"+
		"  Lines Matched:  %d\n"+
		"  Lines Skipped:  %d\n"+
		"  Items:          %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		summary.ReportFile,
		summary.LinesRead,
		summary.LinesMatched,
		summary.LinesSkipped,
		summary.Items)

	if len(summary.Inputs) > 0 {
		writer.WriteString("Inputs:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, input := range summary.Inputs {
			fmt.Fprintf(writer, "  %s\n", input)
		}
		writer.WriteString("\n")
	}

	if len(summary.ByGrammar) > 0 {
		writer.WriteString("Lines By Format:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		names := make([]string, 0, len(summary.ByGrammar))
		for name := range summary.ByGrammar {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(writer, "  %-16s %d\n", name+":", summary.ByGrammar[name])
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
