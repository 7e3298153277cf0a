// =============================================================================
// EVE Parser - Line Grammar Module
// =============================================================================
//
// This module defines the line grammars recognized by the parser. Each grammar
// is a pattern with exactly two capture groups (count and item name) plus the
// order in which those captures appear on the line.
//
// RECOGNIZED FORMATS:
//   1. Count-x-Name    : "1000 x Tritanium"            (blueprint materials)
//   2. Inventory list  : "Tritanium  1,000  Mineral  10 m3" (inventory window)
//   3. Name-Count      : "Integrity Response Drones 1000"
//   4. Count-Name      : "1000 Integrity Response Drones"
//
// NORMALIZATION:
//   Before matching, commas and line terminators are removed from the line so
//   "1,000" and "1000" are the same count. Names in the game are alphabetic, so
//   dropping commas from a name is acceptable.
//
// The grammar set is fixed. Grammars are immutable values and safe to share
// between any number of pipelines.
//
// =============================================================================

package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

// =============================================================================
// GRAMMAR KINDS
// =============================================================================

// Kind identifies one of the fixed line grammars.
type Kind int

const (
	// CountXName matches blueprint material lines: "1000 x Tritanium".
	CountXName Kind = iota

	// InventoryList matches inventory window rows:
	// "Tritanium<TAB>1000<TAB>Mineral<TAB>10 m3".
	InventoryList

	// NameCount matches "Tritanium 1000".
	NameCount

	// CountName matches "1000 Tritanium".
	CountName
)

// String returns the short identifier of the grammar kind.
func (k Kind) String() string {
	switch k {
	case CountXName:
		return "count-x-name"
	case InventoryList:
		return "inventory-list"
	case NameCount:
		return "name-count"
	case CountName:
		return "count-name"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// =============================================================================
// PATTERN BUILDING BLOCKS
// =============================================================================
// A lone lowercase "x" is never a name word. It is reserved as the blueprint
// separator, which keeps "1000 x Tritanium x extra" from being read as an
// item called "Tritanium x extra" (or "x Tritanium x extra").

const (
	// countPattern captures an optionally negative integer.
	countPattern = `(-?\d+)`

	// sep is flexible field whitespace: spaces or tabs.
	sep = `[ \t]+`

	// word is an alphabetic word other than a lone "x".
	word = `(?:[a-wyzA-Z][a-zA-Z]*|x[a-zA-Z]+)`

	// hyphenWord is a word that may also contain hyphens (blueprint names).
	hyphenWord = `(?:[a-wyzA-Z\-][a-zA-Z\-]*|x[a-zA-Z\-]+)`

	// trailing tolerates whitespace after the last field.
	trailing = `[ \t]*`
)

var (
	// name captures one or more separated alphabetic words.
	name = `(` + word + `(?:` + sep + word + `)*)`

	// hyphenName captures one or more separated words that may contain hyphens.
	hyphenName = `(` + hyphenWord + `(?:` + sep + hyphenWord + `)*)`

	// category matches the discarded category phrase of an inventory row.
	category = `[a-zA-Z]+(?:` + sep + `[a-zA-Z]+)*`

	// volume matches the discarded volume field of an inventory row. Anything
	// after the "m3" suffix is allowed.
	volume = `\d+(?:\.\d*)? m3.*`
)

// =============================================================================
// GRAMMAR
// =============================================================================

// Grammar recognizes one line shape and extracts a count and a name from it.
type Grammar struct {
	kind      Kind
	name      string
	example   string
	pattern   *regexp.Regexp
	nameFirst bool
}

// Capture holds the two captured texts of a grammar match, count first.
type Capture struct {
	CountText string
	NameText  string
}

// invalidPrefix labels the sentinel returned for a failed extraction.
const invalidPrefix = "Invalid Input: "

// Invalid returns the sentinel capture for a line that cannot be extracted.
// It pairs a zero count with a label embedding the offending input.
func Invalid(line string) Capture {
	return Capture{CountText: "0", NameText: invalidPrefix + line}
}

// newGrammar compiles a grammar. The pattern must have exactly two capture
// groups; anything else is a programming error.
func newGrammar(kind Kind, displayName, example, pattern string, nameFirst bool) Grammar {
	re := regexp.MustCompile(`^` + pattern + `$`)
	if re.NumSubexp() != 2 {
		panic(fmt.Sprintf("grammar %s: pattern has %d capture groups, want 2", kind, re.NumSubexp()))
	}
	return Grammar{
		kind:      kind,
		name:      displayName,
		example:   example,
		pattern:   re,
		nameFirst: nameFirst,
	}
}

var (
	countXName = newGrammar(CountXName,
		"Blueprint materials",
		"1000 x Tritanium",
		countPattern+` x `+hyphenName+trailing,
		false)

	inventoryList = newGrammar(InventoryList,
		"Inventory list",
		"Integrity Response Drones\t1,000\tAdvanced Commodities\t1,400 m3",
		name+sep+countPattern+sep+category+sep+volume,
		true)

	nameCount = newGrammar(NameCount,
		"Item then count",
		"Integrity Response Drones 1000",
		name+sep+countPattern+trailing,
		true)

	countName = newGrammar(CountName,
		"Count then item",
		"1000 Integrity Response Drones",
		countPattern+sep+name+trailing,
		false)
)

// Default returns the fixed grammar list in dispatch order. The order is the
// tie-break when more than one grammar matches a line.
func Default() []Grammar {
	return []Grammar{countXName, inventoryList, nameCount, countName}
}

// Lookup returns the grammar of the given kind.
func Lookup(kind Kind) (Grammar, bool) {
	for _, g := range Default() {
		if g.kind == kind {
			return g, true
		}
	}
	return Grammar{}, false
}

// Kind returns the grammar's kind.
func (g Grammar) Kind() Kind { return g.kind }

// Name returns the human-readable grammar name.
func (g Grammar) Name() string { return g.name }

// Example returns a sample line accepted by the grammar.
func (g Grammar) Example() string { return g.example }

// Pattern returns the anchored regular expression source.
func (g Grammar) Pattern() string { return g.pattern.String() }

// =============================================================================
// MATCHING AND EXTRACTION
// =============================================================================

// lineCleaner removes digit group separators and line terminators.
var lineCleaner = strings.NewReplacer(",", "", "\r", "", "\n", "")

// Normalize strips commas and line terminators from a line.
func Normalize(line string) string {
	return lineCleaner.Replace(line)
}

// submatch applies the pattern to the normalized line and returns the two
// captures only on an exact, full-line match.
func (g Grammar) submatch(line string) ([]string, bool) {
	m := g.pattern.FindStringSubmatch(line)
	if len(m) != 3 {
		return nil, false
	}
	return m[1:], true
}

// Matches reports whether the whole normalized line is accepted by the
// grammar with exactly two captures.
func (g Grammar) Matches(line string) bool {
	_, ok := g.submatch(Normalize(line))
	return ok
}

// Extract returns the count and name captured from the line, count first.
// When the line does not match, Extract returns the Invalid sentinel and
// false. Callers gate on Matches, so the sentinel is not expected in practice
// and must never be aggregated.
func (g Grammar) Extract(line string) (Capture, bool) {
	normalized := Normalize(line)
	m, ok := g.submatch(normalized)
	if !ok {
		return Invalid(normalized), false
	}
	if g.nameFirst {
		return Capture{CountText: m[1], NameText: m[0]}, true
	}
	return Capture{CountText: m[0], NameText: m[1]}, true
}
