// =============================================================================
// EVE Parser - Totals Module
// =============================================================================
//
// This module accumulates parsed (count, name) pairs into a running sum per
// item name. Names are compared exactly as captured: case and whitespace
// matter.
//
// RULES:
//   - The first sighting of a name creates its entry.
//   - Counts may be negative and totals may go below zero. Nothing is clamped.
//   - Entries are never removed.
//
// =============================================================================

package totals

import (
	"fmt"
	"sort"
)

// =============================================================================
// TOTALS
// =============================================================================

// Totals maps an item name to its summed count.
type Totals map[string]int64

// Total returns the sum for name, or 0 if the name was never seen.
func (t Totals) Total(name string) int64 {
	return t[name]
}

// Show formats the total for name as "<total> <name>". Unseen names show as
// "0 <name>".
func (t Totals) Show(name string) string {
	return fmt.Sprintf("%d %s", t.Total(name), name)
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator sums counts per item name and remembers first-seen order.
// It is owned by a single pipeline run and is not safe for concurrent use.
type Aggregator struct {
	totals Totals
	order  []string
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{totals: make(Totals)}
}

// Add adds count to the running total for name.
func (a *Aggregator) Add(name string, count int64) {
	if _, seen := a.totals[name]; !seen {
		a.totals[name] = 0
		a.order = append(a.order, name)
	}
	a.totals[name] += count
}

// Total returns the current sum for name, or 0 if unseen.
func (a *Aggregator) Total(name string) int64 {
	return a.totals.Total(name)
}

// Len returns the number of distinct names seen.
func (a *Aggregator) Len() int {
	return len(a.totals)
}

// Names returns the names in the order they were first seen.
func (a *Aggregator) Names() []string {
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Snapshot returns a copy of the current totals.
func (a *Aggregator) Snapshot() Totals {
	snapshot := make(Totals, len(a.totals))
	for name, total := range a.totals {
		snapshot[name] = total
	}
	return snapshot
}

// =============================================================================
// ORDERING
// =============================================================================

// Order selects how entries are listed.
type Order string

const (
	// ByInput lists names in first-seen order.
	ByInput Order = "input"

	// ByName lists names alphabetically.
	ByName Order = "name"

	// ByTotal lists the largest totals first, ties broken by name.
	ByTotal Order = "total"
)

// Entry is one name and its total.
type Entry struct {
	Name  string
	Total int64
}

// String renders the entry as "<total> <name>".
func (e Entry) String() string {
	return fmt.Sprintf("%d %s", e.Total, e.Name)
}

// Sorted lists the totals in the requested order. firstSeen supplies the
// input order; names missing from it are appended alphabetically.
func Sorted(t Totals, order Order, firstSeen []string) []Entry {
	entries := make([]Entry, 0, len(t))
	listed := make(map[string]bool, len(t))

	if order == ByInput {
		for _, name := range firstSeen {
			total, ok := t[name]
			if !ok || listed[name] {
				continue
			}
			entries = append(entries, Entry{Name: name, Total: total})
			listed[name] = true
		}
	}

	rest := make([]Entry, 0, len(t)-len(entries))
	for name, total := range t {
		if !listed[name] {
			rest = append(rest, Entry{Name: name, Total: total})
		}
	}

	switch order {
	case ByTotal:
		sort.Slice(rest, func(i, j int) bool {
			if rest[i].Total != rest[j].Total {
				return rest[i].Total > rest[j].Total
			}
			return rest[i].Name < rest[j].Name
		})
	default:
		sort.Slice(rest, func(i, j int) bool { return rest[i].Name < rest[j].Name })
	}

	return append(entries, rest...)
}
