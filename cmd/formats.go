// =============================================================================
// EVE Parser - Formats and Classify Commands
// =============================================================================
//
// 'formats' lists the recognized line formats in the order they are tried.
// 'classify' shows which format, if any, claims each line given to it. It is
// meant for working out why a pasted line was not counted.
//
// COMMAND USAGE:
//   eveparse formats [--patterns]
//   eveparse classify "1000 x Tritanium" "Tritanium 1000"
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/eve-parser/internal/grammar"
	"github.com/spf13/cobra"
)

// showPatterns prints the regular expression of each format.
var showPatterns bool

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the recognized line formats",
	Long: `List the recognized line formats in dispatch order. The first format
that matches a line decides how it is read.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, g := range grammar.NewDispatcher().Grammars() {
			fmt.Fprintf(out, "%d. %-16s %s\n", i+1, g.Kind(), g.Name())
			fmt.Fprintf(out, "   Example: %q\n", g.Example())
			if showPatterns {
				fmt.Fprintf(out, "   Pattern: %s\n", g.Pattern())
			}
		}
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <line>...",
	Short: "Show how individual lines are read",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		d := grammar.NewDispatcher()
		for _, line := range args {
			parsed, ok := d.Classify(line)
			if !ok {
				fmt.Fprintf(out, "%q: unrecognized\n", line)
				continue
			}
			fmt.Fprintf(out, "%q: %s count=%d name=%q\n", line, parsed.Kind, parsed.Count, parsed.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(classifyCmd)

	formatsCmd.Flags().BoolVar(&showPatterns, "patterns", false, "Also print each format's regular expression")
}
