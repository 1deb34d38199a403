// Package pmn implements "piot move notation": a fixed 2-character move
// encoding, one character per square, built for compact storage and
// transport rather than human readability. There is no established
// standard for it; the format follows its own alphabet and promotion-
// glyph table, kept as a small package of its own the way FEN has one.
package pmn

import (
	"strings"

	"github.com/herohde/piotchess/pkg/chess"
)

// alphabet maps square index 0..63 (a1..h8, file-major within rank, the
// same numbering chess.Square already uses) to a single printable glyph.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!?"

// promoGlyph is keyed by [kind][fileDelta+1], fileDelta in {-1,0,1} for a
// capture-left, straight, or capture-right promoting pawn move.
var promoGlyph = map[chess.Kind][3]byte{
	chess.Knight: {'(', '^', ')'},
	chess.Rook:   {'[', '_', ']'},
	chess.Bishop: {'@', '#', '$'},
	chess.Queen:  {'{', '~', '}'},
}

type promoGlyphKey struct {
	kind  chess.Kind
	delta int
}

var glyphToPromo map[byte]promoGlyphKey

func init() {
	glyphToPromo = make(map[byte]promoGlyphKey, 12)
	for kind, glyphs := range promoGlyph {
		for i, g := range glyphs {
			glyphToPromo[g] = promoGlyphKey{kind: kind, delta: i - 1}
		}
	}
}

// Encode renders a resolved move as a 2-character PMN pair: the direct
// square alphabet on both halves, unless the move is a pawn promotion, in
// which case the second char is the promotion glyph matching (piece,
// direction) — including for queen promotions, which get their own glyph
// rather than the plain destination char (Decode's default-to-queen rule
// below exists for tolerance of that shorter plain-pair form, not as the
// canonical encoding).
func Encode(from, to chess.Square, movingKind, promotion chess.Kind) (string, error) {
	if !from.IsValid() || !to.IsValid() {
		return "", chessError("square out of range")
	}
	c1 := alphabet[from]

	if promotion == chess.NoKind || movingKind != chess.Pawn {
		return string([]byte{c1, alphabet[to]}), nil
	}

	delta := int(to.File()) - int(from.File())
	if delta < -1 || delta > 1 {
		return "", chessError("promotion move changes file by more than one")
	}
	glyphs, ok := promoGlyph[promotion]
	if !ok {
		return "", chessError("invalid promotion piece")
	}
	return string([]byte{c1, glyphs[delta+1]}), nil
}

// FromSquare decodes only the origin square of a PMN pair, useful for
// looking up the moving piece's kind before calling Decode.
func FromSquare(pair string) (chess.Square, error) {
	runes := []rune(pair)
	if len(runes) != 2 {
		return chess.NoSquare, chessError("pmn pair must be exactly 2 characters: %q", pair)
	}
	idx := strings.IndexRune(alphabet, runes[0])
	if idx < 0 {
		return chess.NoSquare, chessError("invalid pmn square glyph: %q", string(runes[0]))
	}
	return chess.Square(idx), nil
}

// Decode parses a 2-character PMN pair into a (from, to, promotion) triple.
// movingKind is the kind of the piece standing on the decoded from-square,
// needed for the same reason as in Encode: a plain destination glyph that
// lands a pawn on the far rank is read as a queen promotion; the same
// glyph pair for any other piece is read as an ordinary move.
func Decode(pair string, movingKind chess.Kind) (from, to chess.Square, promotion chess.Kind, err error) {
	runes := []rune(pair)
	if len(runes) != 2 {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, chessError("pmn pair must be exactly 2 characters: %q", pair)
	}

	fromIdx := strings.IndexRune(alphabet, runes[0])
	if fromIdx < 0 {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, chessError("invalid pmn square glyph: %q", string(runes[0]))
	}
	from = chess.Square(fromIdx)

	g2 := byte(runes[1])
	if toIdx := strings.IndexByte(alphabet, g2); toIdx >= 0 {
		to = chess.Square(toIdx)
		promotion = chess.NoKind
		if movingKind == chess.Pawn && isBackRankPush(from, to) {
			promotion = chess.Queen
		}
		return from, to, promotion, nil
	}

	key, ok := glyphToPromo[g2]
	if !ok {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, chessError("invalid pmn destination glyph: %q", string(runes[1]))
	}
	if movingKind != chess.Pawn {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, chessError("promotion glyph used by a non-pawn move")
	}

	var toRank chess.Rank
	switch from.Rank() {
	case chess.Rank7:
		toRank = chess.Rank8
	case chess.Rank2:
		toRank = chess.Rank1
	default:
		return chess.NoSquare, chess.NoSquare, chess.NoKind, chessError("promotion glyph used from a non-promoting rank")
	}
	toFile := int(from.File()) + key.delta
	if toFile < 0 || toFile > int(chess.FileH) {
		return chess.NoSquare, chess.NoSquare, chess.NoKind, chessError("promotion move runs off the board")
	}

	to = chess.NewSquare(chess.File(toFile), toRank)
	promotion = key.kind
	return from, to, promotion, nil
}

// isBackRankPush reports whether from->to is a one-rank pawn advance
// landing on the color's promotion rank (rank 1/8), regardless of file.
func isBackRankPush(from, to chess.Square) bool {
	return (from.Rank() == chess.Rank7 && to.Rank() == chess.Rank8) ||
		(from.Rank() == chess.Rank2 && to.Rank() == chess.Rank1)
}

func chessError(format string, args ...interface{}) error {
	return chess.KindError(chess.InvalidSAN, format, args...)
}
