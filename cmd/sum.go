// =============================================================================
// EVE Parser - Sum Command
// =============================================================================
//
// This file defines the 'sum' command, which reads one or more inputs to the
// end, totals every recognized item and prints the result.
//
// COMMAND USAGE:
//   eveparse sum [files...] [flags]
//
// INPUTS:
//   - No files and no --clipboard : standard input
//   - "-"                          : standard input
//   - *.xlsx                       : spreadsheet rows, cells joined by tabs
//   - *.csv                        : delimited records, fields joined by tabs
//   - anything else                : a text file
//   - --clipboard                  : the system clipboard (read after files)
//
// OUTPUT:
//   One "<total> <name>" line per item on standard output, or a report file
//   in --output-dir (text, xml or xlsx) together with a run summary.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ginjaninja78/eve-parser/internal/config"
	"github.com/ginjaninja78/eve-parser/internal/pipeline"
	"github.com/ginjaninja78/eve-parser/internal/report"
	"github.com/ginjaninja78/eve-parser/internal/source"
	"github.com/ginjaninja78/eve-parser/internal/totals"
	"github.com/ginjaninja78/eve-parser/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// fromClipboard adds the system clipboard as an input.
var fromClipboard bool

// outputFormat overrides output.format from the config.
var outputFormat string

// sortOrder overrides output.sort from the config.
var sortOrder string

// outputDir overrides output.dir from the config.
var outputDir string

// items limits output to the named items, including ones never seen.
var items []string

// skipZero overrides output.skip_zero from the config.
var skipZero bool

// xlsxSheet overrides input.xlsx_sheet from the config.
var xlsxSheet string

// showStats prints line statistics to standard error.
var showStats bool

// =============================================================================
// SUM COMMAND DEFINITION
// =============================================================================

var sumCmd = &cobra.Command{
	Use:   "sum [files...]",
	Short: "Total the items in pasted EVE text",
	Long: `The sum command reads every input to the end, recognizes each line as
one of the supported formats and adds up the count for every item.

Totals are printed only after all input has been read. Unrecognized lines
are skipped silently. Counts may be negative, and so may totals.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSum(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(sumCmd)

	sumCmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the system clipboard")
	sumCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text, xml or xlsx")
	sumCmd.Flags().StringVarP(&sortOrder, "sort", "s", "", "Sort order: input, name or total")
	sumCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write a report file to this directory")
	sumCmd.Flags().StringSliceVarP(&items, "item", "i", nil, "Only show these items (repeatable)")
	sumCmd.Flags().BoolVar(&skipZero, "skip-zero", false, "Leave items with a zero total out of the report")
	sumCmd.Flags().StringVar(&xlsxSheet, "sheet", "", "Worksheet to read from .xlsx inputs")
	sumCmd.Flags().BoolVar(&showStats, "stats", false, "Print line statistics to standard error")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// sumSettings is the effective configuration after flag overrides.
type sumSettings struct {
	format    string
	order     string
	dir       string
	sheet     string
	delimiter string
	skipZero  bool
	maxLine   int
	fileNames string
	outSheet  string
}

// resolveSettings merges command-line flags over the loaded configuration.
func resolveSettings(cmd *cobra.Command) (sumSettings, error) {
	s := sumSettings{
		format:    appConfig.Output.Format,
		order:     appConfig.Output.Sort,
		dir:       appConfig.Output.Dir,
		sheet:     appConfig.Input.XLSXSheet,
		delimiter: appConfig.Input.CSVDelimiter,
		skipZero:  appConfig.Output.SkipZero,
		maxLine:   appConfig.Input.MaxLineBytes,
		fileNames: appConfig.Output.FileNameFormat,
		outSheet:  appConfig.Output.XLSXSheet,
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.format = outputFormat
	}
	if flags.Changed("sort") {
		s.order = sortOrder
	}
	if flags.Changed("output-dir") {
		s.dir = outputDir
	}
	if flags.Changed("sheet") {
		s.sheet = xlsxSheet
	}
	if flags.Changed("skip-zero") {
		s.skipZero = skipZero
	}

	if err := config.ValidateFormat(s.format); err != nil {
		return s, err
	}
	if err := config.ValidateSort(s.order); err != nil {
		return s, err
	}
	if s.format == "xlsx" && s.dir == "" {
		return s, fmt.Errorf("xlsx output needs --output-dir")
	}
	return s, nil
}

// runSum reads every input, totals the items and writes the result.
func runSum(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: OPEN INPUTS
	// =========================================================================

	inputs, names, closeAll, err := openInputs(cmd, args, settings)
	if err != nil {
		return err
	}
	defer closeAll()

	logger.Debug("Reading %d input(s): %s", len(names), strings.Join(names, ", "))

	// =========================================================================
	// STEP 2: RUN THE PIPELINE
	// =========================================================================
	// Totals only become available once every input is exhausted.

	p := pipeline.New(pipeline.WithLogger(logger))
	result, err := p.Run(source.Multi(inputs...))
	if err != nil {
		return err
	}

	if showStats {
		printStats(cmd, result.Stats)
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	if len(items) > 0 {
		out := cmd.OutOrStdout()
		for _, item := range items {
			fmt.Fprintln(out, result.Show(item))
		}
		return nil
	}

	entries := result.Entries(totals.Order(settings.order))
	opts := report.Options{
		Format:    settings.format,
		Indent:    "  ",
		SheetName: settings.outSheet,
		SkipZero:  settings.skipZero,
	}

	if settings.dir == "" {
		return report.Write(cmd.OutOrStdout(), entries, opts)
	}

	reportPath, err := writeReportFile(settings, entries, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), reportPath)

	summaryPath, err := utils.WriteSummaryLog(utils.RunSummary{
		StartTime:    startTime,
		EndTime:      time.Now(),
		Inputs:       names,
		ReportFile:   reportPath,
		LinesRead:    result.Stats.LinesRead,
		LinesMatched: result.Stats.LinesMatched,
		LinesSkipped: result.Stats.LinesSkipped,
		Items:        len(result.Totals),
		ByGrammar:    grammarCounts(result.Stats),
	}, settings.dir)
	if err != nil {
		// The report is already written.
		logger.Warn("Failed to write summary: %v", err)
		return nil
	}
	logger.Info("Wrote summary to: %s", summaryPath)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// openInputs builds the ordered list of sources for the command arguments.
// The returned close function releases every opened file.
func openInputs(cmd *cobra.Command, args []string, settings sumSettings) ([]source.Source, []string, func(), error) {
	var (
		sources []source.Source
		names   []string
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if len(args) == 0 && !fromClipboard {
		args = []string{"-"}
	}

	for _, arg := range args {
		switch {
		case arg == "-":
			sources = append(sources, source.NewReader(cmd.InOrStdin(), settings.maxLine))
			names = append(names, "stdin")

		case strings.EqualFold(filepath.Ext(arg), ".xlsx"):
			src, err := source.OpenXLSX(arg, settings.sheet)
			if err != nil {
				closeAll()
				return nil, nil, nil, fmt.Errorf("failed to open %s: %w", arg, err)
			}
			sources = append(sources, src)
			closers = append(closers, src.Close)
			names = append(names, arg)

		case strings.EqualFold(filepath.Ext(arg), ".csv"):
			src, err := source.OpenCSV(arg, settings.delimiter)
			if err != nil {
				closeAll()
				return nil, nil, nil, fmt.Errorf("failed to open %s: %w", arg, err)
			}
			sources = append(sources, src)
			closers = append(closers, src.Close)
			names = append(names, arg)

		default:
			src, err := source.Open(arg, settings.maxLine)
			if err != nil {
				closeAll()
				return nil, nil, nil, fmt.Errorf("failed to open %s: %w", arg, err)
			}
			sources = append(sources, src)
			closers = append(closers, src.Close)
			names = append(names, arg)
		}
	}

	if fromClipboard {
		src, err := source.Clipboard()
		if err != nil {
			closeAll()
			return nil, nil, nil, err
		}
		sources = append(sources, src)
		names = append(names, "clipboard")
	}

	return sources, names, closeAll, nil
}

// writeReportFile writes the report into the output directory under a
// generated name.
func writeReportFile(settings sumSettings, entries []totals.Entry, opts report.Options) (string, error) {
	if err := utils.EnsureDir(settings.dir); err != nil {
		return "", err
	}

	fileName := utils.GenerateOutputFileName(settings.fileNames, map[string]string{
		"ext": report.Extension(settings.format),
	})
	reportPath := filepath.Join(settings.dir, fileName)

	file, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}

	if err := report.Write(file, entries, opts); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close report: %w", err)
	}

	logger.Info("Wrote report to: %s", reportPath)
	return reportPath, nil
}

// grammarCounts keys the per-grammar line counts by grammar name.
func grammarCounts(stats pipeline.Stats) map[string]int {
	counts := make(map[string]int, len(stats.ByGrammar))
	for kind, n := range stats.ByGrammar {
		counts[kind.String()] = n
	}
	return counts
}

// printStats writes line statistics to standard error.
func printStats(cmd *cobra.Command, stats pipeline.Stats) {
	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Lines read:      %d\n", stats.LinesRead)
	fmt.Fprintf(out, "Lines matched:   %d\n", stats.LinesMatched)
	fmt.Fprintf(out, "Lines skipped:   %d\n", stats.LinesSkipped)

	counts := grammarCounts(stats)
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(out, "  %-16s %d\n", kind+":", counts[kind])
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", stats.ProcessingTime)
}
