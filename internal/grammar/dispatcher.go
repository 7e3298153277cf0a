package grammar

import (
	"errors"
	"fmt"
	"strconv"
)

// ParsedLine is the normalized result of applying a grammar to one line.
// Count may be negative; adjustments and removals are valid input.
type ParsedLine struct {
	Count int64
	Name  string
	Kind  Kind
}

// Dispatcher picks the first grammar in its list that matches a line.
type Dispatcher struct {
	grammars []Grammar
}

// NewDispatcher returns a dispatcher over the given grammars, in order.
// With no grammars it uses Default().
func NewDispatcher(grammars ...Grammar) *Dispatcher {
	if len(grammars) == 0 {
		grammars = Default()
	}
	list := make([]Grammar, len(grammars))
	copy(list, grammars)
	return &Dispatcher{grammars: list}
}

// Grammars returns a copy of the dispatch order.
func (d *Dispatcher) Grammars() []Grammar {
	list := make([]Grammar, len(d.grammars))
	copy(list, d.grammars)
	return list
}

// Classify applies the first matching grammar to the line. Lines no grammar
// recognizes (headers, blank lines, free text) return false and are meant to
// be dropped without error.
func (d *Dispatcher) Classify(line string) (ParsedLine, bool) {
	for _, g := range d.grammars {
		if !g.Matches(line) {
			continue
		}
		capture, ok := g.Extract(line)
		if !ok {
			panic(fmt.Sprintf("grammar %s matched %q but extraction failed", g.kind, line))
		}
		count, ok := parseCount(capture.CountText)
		if !ok {
			return ParsedLine{}, false
		}
		return ParsedLine{Count: count, Name: capture.NameText, Kind: g.kind}, true
	}
	return ParsedLine{}, false
}

// parseCount converts captured count text. The capture group only admits an
// optional sign and digits, so a syntax error here is a defect and panics.
// A count too large for int64 is reported as not parseable.
func parseCount(text string) (int64, bool) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		panic(fmt.Sprintf("count capture %q is not an integer: %v", text, err))
	}
	return n, true
}
