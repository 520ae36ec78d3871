package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Side identifies which player's repertoire is under analysis.
type Side int

const (
	White Side = iota
	Black
)

// ParseSide accepts "white"/"w" or "black"/"b", case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(s) {
	case "WHITE", "W":
		return White, nil
	case "BLACK", "B":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown side %q: want white or black", s)
	}
}

func (s Side) Color() chess.Color {
	if s == Black {
		return chess.Black
	}
	return chess.White
}

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}
