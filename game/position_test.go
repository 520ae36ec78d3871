package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestStartingPosition(t *testing.T) {
	p := StartingPosition()

	require.Equal(t, startFEN, p.FEN(), "Should serialize to the standard start FEN")
	require.Equal(t, White, p.Turn(), "White should move first")
	require.Equal(t, 0, p.Plies(), "No moves should be recorded")
	require.Equal(t, "", p.Transcript(), "Transcript should be empty")
}

func TestNormalizeFEN(t *testing.T) {
	t.Run("strips move counters", func(t *testing.T) {
		got := NormalizeFEN(startFEN)
		require.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", got,
			"Key should keep placement, side, castling and en passant only")
	})

	t.Run("leaves short strings alone", func(t *testing.T) {
		require.Equal(t, "garbage", NormalizeFEN("garbage"),
			"Inputs without enough fields should pass through")
	})
}

func TestApplyUCI(t *testing.T) {
	t.Run("returns a new position and leaves the receiver untouched", func(t *testing.T) {
		p := StartingPosition()

		next, err := p.ApplyUCI("e2e4")

		require.NoError(t, err)
		require.Equal(t, Black, next.Turn(), "Black should be to move after 1. e4")
		require.Equal(t, 1, next.Plies(), "One ply should be recorded")
		require.Equal(t, "1. e4", next.Transcript())
		require.Equal(t, startFEN, p.FEN(), "Original position should not change")
		require.Equal(t, 0, p.Plies(), "Original history should not change")
	})

	t.Run("rejects malformed moves", func(t *testing.T) {
		p := StartingPosition()

		_, err := p.ApplyUCI("zz99")

		require.Error(t, err, "Malformed UCI should not apply")
	})

	t.Run("siblings do not share history", func(t *testing.T) {
		p := StartingPosition()
		afterE4, err := p.ApplyUCI("e2e4")
		require.NoError(t, err)

		a, err := afterE4.ApplyUCI("e7e5")
		require.NoError(t, err)
		b, err := afterE4.ApplyUCI("c7c5")
		require.NoError(t, err)

		require.Equal(t, "1. e4 e5", a.Transcript())
		require.Equal(t, "1. e4 c5", b.Transcript(), "Branches should keep independent histories")
	})
}

func TestApplySAN(t *testing.T) {
	p := StartingPosition()

	next, err := p.ApplySAN("Nf3")

	require.NoError(t, err)
	require.Equal(t, "1. Nf3", next.Transcript())

	_, err = p.ApplySAN("Ke2")
	require.Error(t, err, "Illegal SAN should not apply")
}

func TestTranscript(t *testing.T) {
	t.Run("numbers full and half moves", func(t *testing.T) {
		p := StartingPosition()
		for _, san := range []string{"d4", "Nf6", "c4", "e6", "Nc3"} {
			var err error
			p, err = p.ApplySAN(san)
			require.NoError(t, err)
		}

		require.Equal(t, "1. d4 Nf6 2. c4 e6 3. Nc3", p.Transcript())
	})

	t.Run("starts with an ellipsis from a black-to-move root", func(t *testing.T) {
		p, err := FromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
		require.NoError(t, err)

		p, err = p.ApplySAN("e5")
		require.NoError(t, err)
		require.Equal(t, "1... e5", p.Transcript())

		p, err = p.ApplySAN("Nf3")
		require.NoError(t, err)
		require.Equal(t, "1... e5 2. Nf3", p.Transcript())
	})
}

func TestFromFEN(t *testing.T) {
	t.Run("round trips a position", func(t *testing.T) {
		fen := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2"
		p, err := FromFEN(fen)

		require.NoError(t, err)
		require.Equal(t, fen, p.FEN())
		require.Equal(t, White, p.Turn())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := FromFEN("not a fen")
		require.Error(t, err)
	})
}

func TestKeyEquality(t *testing.T) {
	// Same placement reached by different move orders; only the move
	// counters may differ, and those are excluded from the key.
	a := StartingPosition()
	for _, san := range []string{"Nf3", "Nf6", "Nc3"} {
		var err error
		a, err = a.ApplySAN(san)
		require.NoError(t, err)
	}
	b := StartingPosition()
	for _, san := range []string{"Nc3", "Nf6", "Nf3"} {
		var err error
		b, err = b.ApplySAN(san)
		require.NoError(t, err)
	}

	require.Equal(t, a.Key(), b.Key(), "Transposed positions should share a canonical key")
	require.NotEqual(t, a.Transcript(), b.Transcript(), "Histories should stay distinct")
}
