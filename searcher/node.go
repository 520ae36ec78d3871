package searcher

import "gapfinder/game"

// Node is the unit of search state: a position plus the estimated
// unconditional probability that it arises in a real game. Nodes are created
// on expansion and never mutated afterwards, except that transposition
// merging (opt-in) folds a duplicate's probability and origin into the entry
// already on the frontier.
type Node struct {
	Position    game.Position
	Probability float64
	// Origins holds the move sequences of merged transpositions beyond the
	// primary one. Empty unless merging is enabled.
	Origins []game.Position
}
