package chess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/herohde/piotchess/pkg/chess"
)

// NewStartingState's half-move clock starts at zero, not the teacher's
// blank-board default of one.
func TestHalfMoveClock_DefaultsToZero(t *testing.T) {
	gs := chess.NewStartingState()
	assert.Equal(t, 0, gs.HalfMoveClock)
}

// NewBlankBoard plus manual placement is the same construction path fen.Decode
// uses internally (via NewGameState); the clock there is whatever the caller
// passes, not an implicit default.
func TestHalfMoveClock_ExplicitOnManualConstruction(t *testing.T) {
	b := chess.NewBlankBoard()
	_, err := b.Place(chess.White, chess.King, chess.NewSquare(chess.FileE, chess.Rank1))
	assert.NoError(t, err)
	_, err = b.Place(chess.Black, chess.King, chess.NewSquare(chess.FileE, chess.Rank8))
	assert.NoError(t, err)

	gs := chess.NewGameState(b, chess.White, chess.NoCastling, chess.Chess960Rights{}, lang.None[chess.Square](), 7, 1)
	assert.Equal(t, 7, gs.HalfMoveClock)
}
