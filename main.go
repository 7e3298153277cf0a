// =============================================================================
// EVE Parser - Main Entry Point
// =============================================================================
//
// USAGE:
//   eveparse sum [files...]   - Total the items in pasted EVE text
//   eveparse classify <line>  - Show how a single line is read
//   eveparse formats          - List the recognized line formats
//   eveparse version          - Display the application version
//
// LAYOUT:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : line grammars, totals, input sources and reports
//   - pkg/      : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/eve-parser/cmd"
)

func main() {
	cmd.Execute()
}
