// Package searcher finds the most probable positions a player will face for
// which their repertoire has no prepared response. It runs a
// probability-ordered best-first search over the implicit game tree generated
// by the move-frequency oracle, pruned by the repertoire.
package searcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gapfinder/game"
	"gapfinder/oracle"
	"gapfinder/repertoire"
)

type Option func(e *Engine)

// WithMergeTranspositions merges frontier entries that share a canonical
// position, summing their probabilities and keeping every originating move
// sequence. Off by default: transpositions are treated as separate entries.
func WithMergeTranspositions() Option {
	return func(e *Engine) {
		e.merge = true
	}
}

// WithMetrics enables run metrics collection.
func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = NewCollector()
	}
}

// Engine owns one search run at a time: the frontier and result set are
// created per run, so a single Engine can be reused sequentially.
type Engine struct {
	index   *repertoire.Index
	oracle  oracle.Oracle
	merge   bool
	metrics Collector
	last    SearchMetrics
}

func New(index *repertoire.Index, o oracle.Oracle, options ...Option) *Engine {
	e := &Engine{
		index:   index,
		oracle:  o,
		metrics: NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// LastMetrics returns the metrics of the most recent run. Zero value unless
// WithMetrics was set.
func (e *Engine) LastMetrics() SearchMetrics {
	return e.last
}

// Run searches for up to limit positions uncovered by the repertoire and
// returns them in discovery order. The frontier is seeded with the starting
// position when the repertoire's side moves first, otherwise with the
// oracle's candidate positions one ply in, so the opponent's likely first
// moves are accounted for immediately.
//
// The run ends when limit gaps are found or the frontier is exhausted; an
// exhausted frontier yields a short result set and no error. A failed oracle
// lookup or a cancelled context aborts the run, returning the gaps collected
// so far together with the error.
func (e *Engine) Run(ctx context.Context, limit int) ([]Node, error) {
	if limit < 1 {
		return nil, fmt.Errorf("requested position count must be positive, got %d", limit)
	}

	logger := log.With().Str("run", uuid.NewString()).Logger()
	e.metrics.Start()

	front := newFrontier(e.merge)
	root := Node{Position: game.StartingPosition(), Probability: 1}
	if e.index.Side() == game.White {
		front.insert(root)
	} else {
		// The analyzed side moves second: account for the opponent's likely
		// first moves before consulting the repertoire at all.
		if err := e.expand(ctx, front, root); err != nil {
			e.finish(logger, nil)
			return nil, err
		}
	}

	var gaps []Node
	for !front.empty() {
		if err := ctx.Err(); err != nil {
			e.finish(logger, gaps)
			return gaps, err
		}

		node := front.popMax()
		mv, ok := e.index.Move(node.Position)
		if !ok {
			gaps = append(gaps, node)
			e.metrics.AddGap()
			logger.Debug().
				Float64("probability", node.Probability).
				Str("line", node.Position.Transcript()).
				Msg("uncovered position")
			if len(gaps) == limit {
				break
			}
			continue
		}

		next, err := node.Position.ApplyUCI(mv)
		if err != nil {
			e.finish(logger, gaps)
			return gaps, fmt.Errorf("prepared move after %q: %w", node.Position.Transcript(), err)
		}
		if err := e.expand(ctx, front, Node{Position: next, Probability: node.Probability}); err != nil {
			e.finish(logger, gaps)
			return gaps, err
		}
	}

	e.finish(logger, gaps)
	return gaps, nil
}

// expand queries the oracle on the node's position and inserts one child per
// candidate continuation, each with probability = parent x relative share.
func (e *Engine) expand(ctx context.Context, front *frontier, node Node) error {
	candidates, err := e.oracle.Candidates(ctx, node.Position.FEN())
	e.metrics.AddOracleCall()
	if err != nil {
		return fmt.Errorf("expanding after %q: %w", node.Position.Transcript(), err)
	}

	for _, c := range candidates {
		child, err := node.Position.ApplyUCI(c.UCI)
		if err != nil {
			return fmt.Errorf("oracle candidate after %q: %w", node.Position.Transcript(), err)
		}
		front.insert(Node{Position: child, Probability: node.Probability * c.Probability})
	}
	e.metrics.AddExpansion()
	e.metrics.ObserveFrontier(front.size())
	return nil
}

func (e *Engine) finish(logger zerolog.Logger, gaps []Node) {
	e.last = e.metrics.Complete()
	logger.Info().
		Int("gaps", len(gaps)).
		Int64("expansions", e.last.Expansions).
		Int64("oracle_calls", e.last.OracleCalls).
		Dur("duration", e.last.Duration).
		Msg("search finished")
}
