package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Position is an immutable board state together with the move sequence that
// produced it. Applying a move returns a new Position and leaves the receiver
// untouched.
type Position struct {
	pos *chess.Position
	// SAN history from the root position, used for transcripts.
	sans []string
	// The root position had Black to move (set when built from a FEN).
	blackStarts bool
}

// StartingPosition returns the standard initial position with an empty
// move history.
func StartingPosition() Position {
	return Position{pos: chess.StartingPosition()}
}

// FromFEN builds a Position from a FEN string. Its move history starts empty;
// transcripts number moves from the given position.
func FromFEN(fen string) (Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return Position{}, fmt.Errorf("invalid FEN %q: %w", fen, err)
	}
	g := chess.NewGame(opt)
	return Position{
		pos:         g.Position(),
		blackStarts: g.Position().Turn() == chess.Black,
	}, nil
}

// Turn reports which side moves next.
func (p Position) Turn() Side {
	if p.pos.Turn() == chess.Black {
		return Black
	}
	return White
}

// FEN returns the full FEN serialization, move counters included.
func (p Position) FEN() string {
	return p.pos.String()
}

// Key returns the canonical serialization used for position equality and
// repertoire lookups: piece placement, side to move, castling rights and
// en passant square. Move counters are excluded.
func (p Position) Key() string {
	return NormalizeFEN(p.pos.String())
}

// NormalizeFEN strips the halfmove clock and fullmove number from a FEN.
func NormalizeFEN(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fen
	}
	return strings.Join(fields[:4], " ")
}

// ApplyUCI plays a move given in UCI notation ("g1f3") and returns the
// resulting Position. The receiver is not modified.
func (p Position) ApplyUCI(uci string) (Position, error) {
	move, err := chess.UCINotation{}.Decode(p.pos, uci)
	if err != nil {
		return Position{}, fmt.Errorf("move %q at %s: %w", uci, p.FEN(), err)
	}
	return p.apply(move), nil
}

// ApplySAN plays a move given in standard algebraic notation ("Nf3").
func (p Position) ApplySAN(san string) (Position, error) {
	move, err := chess.AlgebraicNotation{}.Decode(p.pos, san)
	if err != nil {
		return Position{}, fmt.Errorf("move %q at %s: %w", san, p.FEN(), err)
	}
	return p.apply(move), nil
}

func (p Position) apply(move *chess.Move) Position {
	san := chess.AlgebraicNotation{}.Encode(p.pos, move)
	history := make([]string, len(p.sans), len(p.sans)+1)
	copy(history, p.sans)
	return Position{
		pos:         p.pos.Update(move),
		sans:        append(history, san),
		blackStarts: p.blackStarts,
	}
}

// Plies returns the number of moves played since the root position.
func (p Position) Plies() int {
	return len(p.sans)
}

// Transcript renders the move history as a numbered SAN line, e.g.
// "1. d4 Nf6 2. c4". A history rooted in a Black-to-move position starts
// with "1...".
func (p Position) Transcript() string {
	var b strings.Builder
	num := 1
	for i, san := range p.sans {
		blackMove := (i%2 == 0) == p.blackStarts
		if i > 0 {
			b.WriteByte(' ')
		}
		if !blackMove {
			fmt.Fprintf(&b, "%d. %s", num, san)
		} else {
			if i == 0 {
				fmt.Fprintf(&b, "%d... %s", num, san)
			} else {
				b.WriteString(san)
			}
			num++
		}
	}
	return b.String()
}
