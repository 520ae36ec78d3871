// Package repertoire builds a lookup index of prepared responses from a PGN
// opening file (one or more games or study chapters, merged).
package repertoire

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notnil/chess"

	"gapfinder/game"
)

// ConflictError reports a position for which the opening file prescribes two
// distinct moves for the analyzed side. Ambiguous preparation is a data
// error: it is unclear which line was intended, so no partial index is built.
type ConflictError struct {
	FEN         string
	Prescribed  string // SAN of the move indexed first
	Conflicting string // SAN of the contradicting move
	MovePath    string // moves leading to the position
}

func (e *ConflictError) Error() string {
	where := "the start position"
	if e.MovePath != "" {
		where = "after " + e.MovePath
	}
	return fmt.Sprintf("conflicting responses at position %q (%s): %s vs %s",
		e.FEN, where, e.Prescribed, e.Conflicting)
}

type entry struct {
	uci string
	san string
}

// Index maps a canonical position key to the single move the repertoire
// prescribes there. Read-only after Build.
type Index struct {
	side  game.Side
	moves map[string]entry
}

// Build reads every game in r and indexes each position where side is to
// move and a next move exists. Variations are expanded into one line each
// before the walk, so branching by the opponent merges while branching by
// the analyzed side fails with *ConflictError.
func Build(r io.Reader, side game.Side) (*Index, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}

	idx := &Index{side: side, moves: make(map[string]entry)}
	notation := chess.AlgebraicNotation{}
	for _, g := range splitGames(string(input)) {
		root := chess.StartingPosition()
		if g.fen != "" {
			opt, err := chess.FEN(g.fen)
			if err != nil {
				return nil, fmt.Errorf("reading PGN: %w", err)
			}
			root = chess.NewGame(opt).Position()
		}

		lines, err := expandVariations(moveTokens(tokenize(g.movetext)))
		if err != nil {
			return nil, fmt.Errorf("reading PGN: %w", err)
		}
		for _, line := range lines {
			pos := root
			var path []string
			for _, san := range line {
				move, err := notation.Decode(pos, san)
				if err != nil {
					return nil, fmt.Errorf("reading PGN after %q: %w",
						strings.Join(path, " "), err)
				}
				canonical := notation.Encode(pos, move)
				if pos.Turn() == side.Color() {
					key := game.NormalizeFEN(pos.String())
					uci := move.String()
					prev, ok := idx.moves[key]
					switch {
					case !ok:
						idx.moves[key] = entry{uci: uci, san: canonical}
					case prev.uci != uci:
						return nil, &ConflictError{
							FEN:         pos.String(),
							Prescribed:  prev.san,
							Conflicting: canonical,
							MovePath:    strings.Join(path, " "),
						}
					}
				}
				path = append(path, canonical)
				pos = pos.Update(move)
			}
		}
	}
	return idx, nil
}

// BuildFile builds an Index from the PGN file at path.
func BuildFile(path string, side game.Side) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Build(f, side)
}

// Move returns the prescribed move (UCI) for the given position. The second
// return value is false when the repertoire has no preparation there; that is
// ordinary control flow, not an error.
func (idx *Index) Move(p game.Position) (string, bool) {
	e, ok := idx.moves[p.Key()]
	return e.uci, ok
}

// Side returns the side this repertoire prepares moves for.
func (idx *Index) Side() game.Side {
	return idx.side
}

// Len returns the number of indexed positions.
func (idx *Index) Len() int {
	return len(idx.moves)
}
