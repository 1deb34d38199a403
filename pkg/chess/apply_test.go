package chess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/piotchess/pkg/chess"
	"github.com/herohde/piotchess/pkg/chess/fen"
)

// Starting position, e4 c5 Nf3.
func TestScenario1_OpeningSequence(t *testing.T) {
	g := chess.NewGame()

	for _, m := range []string{"e4", "c5", "Nf3"} {
		_, err := g.PushSAN(m)
		require.NoError(t, err, m)
	}

	want := "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	assert.Equal(t, want, fen.Encode(g.State()))
}

// A forced mate sequence ending gameOver = W.
func TestScenario2_ForcedMate(t *testing.T) {
	gs, err := fen.Decode("rn3b1N/pp2k2p/4p2q/1NQ5/3P4/8/PPP3PP/5RK1 b - - 1 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	for _, m := range []string{"Kd8", "Qc7+", "Ke8", "Qc8+", "Ke7", "Rf7#"} {
		_, err := g.PushSAN(m)
		require.NoError(t, err, m)
	}

	assert.True(t, g.IsCheckmate())
	assert.Equal(t, chess.Result("W"), g.GameOver())
}

// Direct checkmate FEN.
func TestScenario3_DirectCheckmate(t *testing.T) {
	gs, err := fen.Decode("3k2R1/8/3K4/8/8/8/8/8 b - -")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	assert.True(t, g.IsCheckmate())
	assert.Equal(t, chess.Result("W"), g.GameOver())
}

// Stalemate FEN; queries must not mutate the move log.
func TestScenario4_Stalemate(t *testing.T) {
	gs, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - -")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	before := len(g.State().RawMoves())

	assert.True(t, g.IsStalemate())
	assert.Equal(t, chess.DrawResult, g.GameOver())
	assert.False(t, g.IsCheckmate())

	assert.Equal(t, before, len(g.State().RawMoves()))
}

func TestCastling_Standard(t *testing.T) {
	gs, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	san, err := g.PushSAN("O-O")
	require.NoError(t, err)
	assert.Equal(t, "O-O", san)

	king, ok := g.State().Board.PieceAt(sq(chess.FileG, chess.Rank1))
	require.True(t, ok)
	assert.Equal(t, chess.King, king.Kind)
	rook, ok := g.State().Board.PieceAt(sq(chess.FileF, chess.Rank1))
	require.True(t, ok)
	assert.Equal(t, chess.Rook, rook.Kind)

	san, err = g.PushSAN("O-O-O")
	require.NoError(t, err)
	assert.Equal(t, "O-O-O", san)

	bKing, ok := g.State().Board.PieceAt(sq(chess.FileC, chess.Rank8))
	require.True(t, ok)
	assert.Equal(t, chess.King, bKing.Kind)
	bRook, ok := g.State().Board.PieceAt(sq(chess.FileD, chess.Rank8))
	require.True(t, ok)
	assert.Equal(t, chess.Rook, bRook.Kind)
}

// A Chess960 castle where king and rook swap squares.
func TestCastling_Chess960Swap(t *testing.T) {
	in := "rbnqnkrb/pppppppp/8/8/8/8/PPPPPPPP/RBNQNKRB w GAga - 0 1"
	gs, err := fen.Decode(in)
	require.NoError(t, err)
	require.True(t, gs.Chess960.Enabled)
	g := chess.NewGameFromState(gs)

	_, err = g.PushSAN("O-O")
	require.NoError(t, err)

	king, ok := g.State().Board.PieceAt(sq(chess.FileG, chess.Rank1))
	require.True(t, ok)
	assert.Equal(t, chess.King, king.Kind)
	rook, ok := g.State().Board.PieceAt(sq(chess.FileF, chess.Rank1))
	require.True(t, ok)
	assert.Equal(t, chess.Rook, rook.Kind)
}

// Castling rejected out of, through, and into check.
func TestCastling_RejectedByCheck(t *testing.T) {
	t.Run("out of check", func(t *testing.T) {
		gs, err := fen.Decode("4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1")
		require.NoError(t, err)
		g := chess.NewGameFromState(gs)

		_, err = g.PushSAN("O-O")
		require.Error(t, err)
		kind, _ := chess.KindOf(err)
		assert.Equal(t, chess.InCheck, kind)
	})

	t.Run("through check", func(t *testing.T) {
		gs, err := fen.Decode("4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1")
		require.NoError(t, err)
		g := chess.NewGameFromState(gs)

		_, err = g.PushSAN("O-O")
		require.Error(t, err)
		kind, _ := chess.KindOf(err)
		assert.Equal(t, chess.CastleWouldCheck, kind)
	})

	t.Run("into check", func(t *testing.T) {
		gs, err := fen.Decode("4k3/8/8/8/8/8/6r1/R3K2R w KQ - 0 1")
		require.NoError(t, err)
		g := chess.NewGameFromState(gs)

		_, err = g.PushSAN("O-O")
		require.Error(t, err)
		kind, _ := chess.KindOf(err)
		assert.Equal(t, chess.CastleWouldCheck, kind)
	})
}

// En passant fails when the capturing pawn is pinned.
func TestEnPassant_FailsWhenPinned(t *testing.T) {
	gs, err := fen.Decode("4k3/8/8/K2Pp2r/8/8/8/8 w - e6 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	_, err = g.PushSAN("dxe6")
	require.Error(t, err)
	kind, _ := chess.KindOf(err)
	assert.Equal(t, chess.MoveWouldCheck, kind)
}

// En passant still succeeds when not pinned.
func TestEnPassant_Succeeds(t *testing.T) {
	gs, err := fen.Decode("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	san, err := g.PushSAN("dxe6")
	require.NoError(t, err)
	assert.Equal(t, "dxe6", san)

	_, captured := g.State().Board.PieceAt(sq(chess.FileE, chess.Rank5))
	assert.False(t, captured)
	mover, ok := g.State().Board.PieceAt(sq(chess.FileE, chess.Rank6))
	require.True(t, ok)
	assert.Equal(t, chess.Pawn, mover.Kind)
}

// A plain, non-castling SAN king move cannot resolve to a two-file jump
// even when castling rights and an empty path would otherwise allow O-O.
func TestResolveFrom_PlainKingMoveDoesNotReachCastleSquare(t *testing.T) {
	gs, err := fen.Decode("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	_, err = g.PushSAN("Kg1")
	require.Error(t, err)
	kind, _ := chess.KindOf(err)
	assert.Equal(t, chess.CantMoveThatWay, kind)
}

// The king's castling jump must never stand in as a false escape from
// checkmate: the king in check here is two files from a castle square (g1)
// that is itself unattacked, but every square it would actually have to
// pass through or currently occupy is covered, and castling out of check
// is illegal regardless, so this is checkmate and not merely "in check".
func TestCheckmate_CastleSquareIsNotAKingEscape(t *testing.T) {
	gs, err := fen.Decode("k3r3/8/8/8/2n5/5q2/8/4K2R w K - 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	assert.True(t, g.IsCheckmate())
	assert.Equal(t, chess.Result("B"), g.GameOver())
}

// A SAN piece letter naming a kind the mover has none of, while the
// opponent does, reports WrongColor rather than the generic "no piece can
// do that" — the token looks like it named the wrong side's piece.
func TestResolveFrom_WrongColor(t *testing.T) {
	gs, err := fen.Decode("4k3/8/8/8/3n4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	_, err = g.PushSAN("Nf3")
	require.Error(t, err)
	kind, _ := chess.KindOf(err)
	assert.Equal(t, chess.WrongColor, kind)
}

// A pawn placement move landing on the back rank is rejected by name
// rather than folded into the generic "placement moves unsupported" case.
func TestPush_CantPlaceOnBackRank(t *testing.T) {
	g := chess.NewGame()

	_, err := g.PushSAN("P@e8")
	require.Error(t, err)
	kind, _ := chess.KindOf(err)
	assert.Equal(t, chess.CantPlaceOnBackRank, kind)
}

func TestInvariants_AfterMoves(t *testing.T) {
	g := chess.NewGame()
	for _, m := range []string{"e4", "e5", "Nf3", "Nc6", "Bb5"} {
		_, err := g.PushSAN(m)
		require.NoError(t, err, m)
	}

	gs := g.State()
	assert.NotNil(t, gs.Board.King(chess.White))
	assert.NotNil(t, gs.Board.King(chess.Black))

	for _, p := range gs.Board.Pieces(chess.White) {
		if p.Kind == chess.Pawn {
			assert.NotEqual(t, chess.Rank1, p.Square.Rank())
			assert.NotEqual(t, chess.Rank8, p.Square.Rank())
		}
	}
	for _, p := range gs.Board.Pieces(chess.Black) {
		if p.Kind == chess.Pawn {
			assert.NotEqual(t, chess.Rank1, p.Square.Rank())
			assert.NotEqual(t, chess.Rank8, p.Square.Rank())
		}
	}

	assert.Empty(t, chess.InCheck(gs, gs.Turn.Opponent()))
}

func TestHasCastled(t *testing.T) {
	gs, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	g := chess.NewGameFromState(gs)

	assert.False(t, g.State().HasCastled(chess.White))

	_, err = g.PushSAN("O-O")
	require.NoError(t, err)
	assert.True(t, g.State().HasCastled(chess.White))
	assert.False(t, g.State().HasCastled(chess.Black))
}

func TestMovetext(t *testing.T) {
	g := chess.NewGame()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		_, err := g.PushSAN(m)
		require.NoError(t, err)
	}
	assert.Equal(t, "1.e4 e5 2.Nf3", g.State().Movetext())
}

func TestPushSquares_MatchesPushSAN(t *testing.T) {
	g1 := chess.NewGame()
	san1, err := g1.PushSAN("e4")
	require.NoError(t, err)

	g2 := chess.NewGame()
	san2, err := g2.PushSquares(sq(chess.FileE, chess.Rank2), sq(chess.FileE, chess.Rank4), chess.NoKind)
	require.NoError(t, err)

	assert.Equal(t, san1, san2)
	assert.Equal(t, fen.Encode(g1.State()), fen.Encode(g2.State()))
}
