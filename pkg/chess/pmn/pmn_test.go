package pmn_test

import (
	"testing"

	"github.com/herohde/piotchess/pkg/chess"
	"github.com/herohde/piotchess/pkg/chess/pmn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(f chess.File, r chess.Rank) chess.Square {
	return chess.NewSquare(f, r)
}

func TestEncodeDecodeRoundTrip_NonPromotion(t *testing.T) {
	from, to := sq(chess.FileE, chess.Rank2), sq(chess.FileE, chess.Rank4)

	pair, err := pmn.Encode(from, to, chess.Pawn, chess.NoKind)
	require.NoError(t, err)
	assert.Len(t, pair, 2)

	gotFrom, gotTo, promo, err := pmn.Decode(pair, chess.Pawn)
	require.NoError(t, err)
	assert.Equal(t, from, gotFrom)
	assert.Equal(t, to, gotTo)
	assert.Equal(t, chess.NoKind, promo)
}

func TestEncodeDecodeRoundTrip_Promotion(t *testing.T) {
	from := sq(chess.FileD, chess.Rank7)

	tests := []struct {
		name string
		to   chess.Square
		kind chess.Kind
	}{
		{"straight to queen", sq(chess.FileD, chess.Rank8), chess.Queen},
		{"capture-left to rook", sq(chess.FileC, chess.Rank8), chess.Rook},
		{"capture-right to bishop", sq(chess.FileE, chess.Rank8), chess.Bishop},
		{"straight to knight", sq(chess.FileD, chess.Rank8), chess.Knight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := pmn.Encode(from, tt.to, chess.Pawn, tt.kind)
			require.NoError(t, err)

			gotFrom, gotTo, promo, err := pmn.Decode(pair, chess.Pawn)
			require.NoError(t, err)
			assert.Equal(t, from, gotFrom)
			assert.Equal(t, tt.to, gotTo)
			assert.Equal(t, tt.kind, promo)
		})
	}
}

func TestEncode_PromotionGlyphTable(t *testing.T) {
	from, to := sq(chess.FileD, chess.Rank7), sq(chess.FileD, chess.Rank8)

	tests := []struct {
		kind  chess.Kind
		glyph byte
	}{
		{chess.Knight, '^'},
		{chess.Rook, '_'},
		{chess.Bishop, '#'},
		{chess.Queen, '~'},
	}
	for _, tt := range tests {
		pair, err := pmn.Encode(from, to, chess.Pawn, tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.glyph, pair[1], "straight promotion to %v", tt.kind)
	}
}

func TestEncode_BoundaryFiles(t *testing.T) {
	// File a: no capture-left available; straight promotion must use the
	// straight glyph, never a capture glyph.
	pair, err := pmn.Encode(sq(chess.FileA, chess.Rank7), sq(chess.FileA, chess.Rank8), chess.Pawn, chess.Queen)
	require.NoError(t, err)
	assert.Equal(t, byte('~'), pair[1])

	// File h: no capture-right available; same straight glyph expectation.
	pair, err = pmn.Encode(sq(chess.FileH, chess.Rank7), sq(chess.FileH, chess.Rank8), chess.Pawn, chess.Queen)
	require.NoError(t, err)
	assert.Equal(t, byte('~'), pair[1])
}

func TestDecode_PlainPairDefaultsToQueen(t *testing.T) {
	from, to := sq(chess.FileD, chess.Rank7), sq(chess.FileD, chess.Rank8)
	// A non-pawn encode of the same squares produces the plain destination
	// glyph pair, the shorter form Decode's default-to-queen rule tolerates.
	plainPair, err := pmn.Encode(from, to, chess.King, chess.NoKind)
	require.NoError(t, err)

	_, gotTo, promo, err := pmn.Decode(plainPair, chess.Pawn)
	require.NoError(t, err)
	assert.Equal(t, to, gotTo)
	assert.Equal(t, chess.Queen, promo)
}

func TestDecode_NonPawnRejectsPromotionGlyph(t *testing.T) {
	from, to := sq(chess.FileD, chess.Rank7), sq(chess.FileD, chess.Rank8)
	pair, err := pmn.Encode(from, to, chess.Pawn, chess.Queen)
	require.NoError(t, err)

	_, _, _, err = pmn.Decode(pair, chess.Knight)
	assert.Error(t, err)
}

func TestFromSquare(t *testing.T) {
	from, to := sq(chess.FileD, chess.Rank7), sq(chess.FileD, chess.Rank8)
	pair, err := pmn.Encode(from, to, chess.Pawn, chess.Queen)
	require.NoError(t, err)

	got, err := pmn.FromSquare(pair)
	require.NoError(t, err)
	assert.Equal(t, from, got)
}
