package chess_test

import (
	"testing"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/piotchess/pkg/chess"
	"github.com/herohde/piotchess/pkg/chess/fen"
)

func TestParseSAN_Shapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want chess.ParsedSAN
	}{
		{"pawn push", "e4", chess.ParsedSAN{Kind: chess.Pawn, To: sq(chess.FileE, chess.Rank4)}},
		{"pawn capture", "exd5", chess.ParsedSAN{
			Kind: chess.Pawn, To: sq(chess.FileD, chess.Rank5), Capture: true,
			DisambigFile: lang.Some(chess.FileE),
		}},
		{"knight move", "Nf3", chess.ParsedSAN{Kind: chess.Knight, To: sq(chess.FileF, chess.Rank3)}},
		{"disambiguated by file", "Nbd7", chess.ParsedSAN{
			Kind: chess.Knight, To: sq(chess.FileD, chess.Rank7),
			DisambigFile: lang.Some(chess.FileB),
		}},
		{"promotion", "e8=Q", chess.ParsedSAN{Kind: chess.Pawn, To: sq(chess.FileE, chess.Rank8), Promotion: chess.Queen}},
		{"kingside castle", "O-O", chess.ParsedSAN{CastleKing: true}},
		{"queenside castle", "O-O-O", chess.ParsedSAN{CastleQueen: true}},
		{"checking suffix stripped", "Qh5+", chess.ParsedSAN{Kind: chess.Queen, To: sq(chess.FileH, chess.Rank5)}},
		{"mating suffix stripped", "Qh5#", chess.ParsedSAN{Kind: chess.Queen, To: sq(chess.FileH, chess.Rank5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chess.ParseSAN(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSAN_Invalid(t *testing.T) {
	tests := []string{"", "z9", "Xf3", "e9"}
	for _, tt := range tests {
		_, err := chess.ParseSAN(tt)
		assert.Error(t, err, tt)
	}
}

func TestParseSAN_Placement(t *testing.T) {
	got, err := chess.ParseSAN("N@f3")
	require.NoError(t, err)
	assert.True(t, got.Placement)
	assert.Equal(t, chess.Knight, got.Kind)
	assert.Equal(t, sq(chess.FileF, chess.Rank3), got.To)
}

func TestRenderSAN_Disambiguation(t *testing.T) {
	gs, err := fen.Decode("4k3/8/8/8/8/8/8/N1N1K3 w - - 0 1")
	require.NoError(t, err)

	a1 := sq(chess.FileA, chess.Rank1)
	c1 := sq(chess.FileC, chess.Rank1)
	b3 := sq(chess.FileB, chess.Rank3)

	san, err := chess.RenderSAN(gs, a1, b3, chess.NoKind)
	require.NoError(t, err)
	assert.Equal(t, "Nab3", san)

	san, err = chess.RenderSAN(gs, c1, b3, chess.NoKind)
	require.NoError(t, err)
	assert.Equal(t, "Ncb3", san)
}
