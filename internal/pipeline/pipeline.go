// =============================================================================
// EVE Parser - Pipeline Module
// =============================================================================
//
// This module wires a line source through the grammar dispatcher into the
// totals aggregator.
//
// PIPELINE:
//   1. Pull the next line from the source
//   2. Classify it with the dispatcher (first matching grammar wins)
//   3. Add recognized lines to the aggregator; drop the rest silently
//   4. When the source reports end of input, hand back the final totals
//
// Totals are only observable once the source is exhausted. If the source
// fails part way through, Run returns the error and no totals at all.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/eve-parser/internal/grammar"
	"github.com/ginjaninja78/eve-parser/internal/logging"
	"github.com/ginjaninja78/eve-parser/internal/totals"
)

// =============================================================================
// SOURCE
// =============================================================================

// Source is a finite, ordered sequence of text lines.
//
// USAGE:
//   for src.Next() {
//       line := src.Line()
//       // ...
//   }
//   if err := src.Err(); err != nil {
//       return err
//   }
type Source interface {
	// Next advances to the next line. It returns false at end of input or
	// on error.
	Next() bool

	// Line returns the current line.
	Line() string

	// Err returns the error that stopped iteration, or nil at a clean end.
	Err() error
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of one pipeline run.
type Result struct {
	// Totals holds the summed count per item name.
	Totals totals.Totals

	// Order lists item names in the order they were first seen.
	Order []string

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about a run.
type Stats struct {
	// LinesRead is the number of lines pulled from the source.
	LinesRead int

	// LinesMatched is the number of lines a grammar recognized.
	LinesMatched int

	// LinesSkipped is the number of unrecognized lines.
	LinesSkipped int

	// ByGrammar counts recognized lines per grammar.
	ByGrammar map[grammar.Kind]int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// Show formats the total for name as "<total> <name>".
func (r *Result) Show(name string) string {
	return r.Totals.Show(name)
}

// Entries lists the totals in the requested order.
func (r *Result) Entries(order totals.Order) []totals.Entry {
	return totals.Sorted(r.Totals, order, r.Order)
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline classifies and aggregates lines. A Pipeline holds no per-run
// state and may be reused.
type Pipeline struct {
	dispatcher *grammar.Dispatcher
	logger     logging.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDispatcher replaces the default dispatcher.
func WithDispatcher(d *grammar.Dispatcher) Option {
	return func(p *Pipeline) {
		p.dispatcher = d
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates a Pipeline using the default grammar order.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		dispatcher: grammar.NewDispatcher(),
		logger:     logging.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consumes src to completion and returns the final totals.
//
// RETURNS:
//   - The Result, once the source has reported end of input.
//   - An error if the source fails. No partial totals are returned.
func (p *Pipeline) Run(src Source) (*Result, error) {
	startTime := time.Now()
	agg := totals.NewAggregator()
	stats := Stats{ByGrammar: make(map[grammar.Kind]int)}

	for src.Next() {
		stats.LinesRead++

		parsed, ok := p.dispatcher.Classify(src.Line())
		if !ok {
			stats.LinesSkipped++
			continue
		}

		stats.LinesMatched++
		stats.ByGrammar[parsed.Kind]++
		agg.Add(parsed.Name, parsed.Count)
	}

	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input after %d lines: %w", stats.LinesRead, err)
	}

	stats.ProcessingTime = time.Since(startTime)
	p.logger.Debug("Read %d lines: %d matched, %d skipped, %d items",
		stats.LinesRead, stats.LinesMatched, stats.LinesSkipped, agg.Len())

	return &Result{
		Totals: agg.Snapshot(),
		Order:  agg.Names(),
		Stats:  stats,
	}, nil
}
