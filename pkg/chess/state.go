package chess

import (
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// MovePair is one full move's worth of SAN, white then black. Black is ""
// if not yet played; White is "" only for the first pair of a game that
// started from a black-to-move FEN (rendered as ".." by Movetext()).
type MovePair struct {
	White, Black string
}

// GameState is the engine's entire mutable state. It is mutated only by
// the move applier; transactional snapshots deep-copy it onto a stack.
type GameState struct {
	Board     *Board
	Turn      Color
	Castling  Castling
	Chess960  Chess960Rights
	EnPassant lang.Optional[Square]

	HalfMoveClock  int
	FullMoveNumber int

	rawLog       []MovePair
	annotatedLog []MovePair

	ledger map[string]int // canonical fingerprint -> occurrence count
}

// NewStartingState returns the standard chess starting position.
func NewStartingState() *GameState {
	b := NewBlankBoard()
	back := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := ZeroFile; f < NumFiles; f++ {
		mustPlace(b, White, back[f], NewSquare(f, Rank1))
		mustPlace(b, White, Pawn, NewSquare(f, Rank2))
		mustPlace(b, Black, Pawn, NewSquare(f, Rank7))
		mustPlace(b, Black, back[f], NewSquare(f, Rank8))
	}

	gs := &GameState{
		Board:          b,
		Turn:           White,
		Castling:       FullCastling,
		EnPassant:      lang.None[Square](),
		HalfMoveClock:  0,
		FullMoveNumber: 1,
		ledger:         map[string]int{},
	}
	gs.ledger[gs.Fingerprint()] = 1
	return gs
}

// NewGameState builds an arbitrary position directly, for use by
// pkg/chess/fen when decoding a FEN string. The repetition ledger is
// seeded with one occurrence of the resulting position, same as
// NewStartingState.
func NewGameState(board *Board, turn Color, castling Castling, chess960 Chess960Rights, enPassant lang.Optional[Square], halfMoveClock, fullMoveNumber int) *GameState {
	gs := &GameState{
		Board:          board,
		Turn:           turn,
		Castling:       castling,
		Chess960:       chess960,
		EnPassant:      enPassant,
		HalfMoveClock:  halfMoveClock,
		FullMoveNumber: fullMoveNumber,
		ledger:         map[string]int{},
	}
	gs.ledger[gs.Fingerprint()] = 1
	return gs
}

func mustPlace(b *Board, c Color, k Kind, sq Square) {
	if _, err := b.Place(c, k, sq); err != nil {
		panic(err) // only reachable with a programming error in the starting layout
	}
}

// Fingerprint is the canonical repetition-ledger key: the FEN rendered
// without the half-move clock and full-move number (fields 1-4 only).
// Rendering is done here (not via pkg/chess/fen) to avoid a package cycle;
// pkg/chess/fen.Encode produces the identical first four fields.
func (gs *GameState) Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(placementField(gs.Board))
	sb.WriteByte(' ')
	sb.WriteString(gs.Turn.String())
	sb.WriteByte(' ')
	sb.WriteString(gs.castlingField())
	sb.WriteByte(' ')
	if sq, ok := gs.EnPassant.V(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func placementField(b *Board) string {
	return b.String()
}

func (gs *GameState) castlingField() string {
	if !gs.Chess960.Enabled {
		return gs.Castling.String()
	}
	if gs.Castling == NoCastling {
		return "-"
	}
	kr, qr := gs.Chess960.KingRookFile, gs.Chess960.QueenRookFile
	standard := kr == FileH && qr == FileA

	var sb strings.Builder
	if gs.Castling.IsAllowed(WhiteKingSide) {
		if standard {
			sb.WriteByte('K')
		} else {
			sb.WriteRune(toUpper(rune(kr.String()[0])))
		}
	}
	if gs.Castling.IsAllowed(WhiteQueenSide) {
		if standard {
			sb.WriteByte('Q')
		} else {
			sb.WriteRune(toUpper(rune(qr.String()[0])))
		}
	}
	if gs.Castling.IsAllowed(BlackKingSide) {
		if standard {
			sb.WriteByte('k')
		} else {
			sb.WriteRune(rune(kr.String()[0]))
		}
	}
	if gs.Castling.IsAllowed(BlackQueenSide) {
		if standard {
			sb.WriteByte('q')
		} else {
			sb.WriteRune(rune(qr.String()[0]))
		}
	}
	return sb.String()
}

// RawMoves returns the unannotated SAN move log.
func (gs *GameState) RawMoves() []MovePair {
	return append([]MovePair(nil), gs.rawLog...)
}

// AnnotatedMoves returns the SAN move log with +/# suffixes.
func (gs *GameState) AnnotatedMoves() []MovePair {
	return append([]MovePair(nil), gs.annotatedLog...)
}

// Movetext renders the annotated log as PGN-style movetext:
// "1.e4 e5 2.Nf3", using ".." where White's half is absent. A missing
// Black half is simply omitted.
func (gs *GameState) Movetext() string {
	var parts []string

	lastIdx := len(gs.annotatedLog) - 1
	if lastIdx < 0 {
		return ""
	}
	lastNum := gs.FullMoveNumber
	if gs.annotatedLog[lastIdx].Black != "" {
		lastNum-- // FullMoveNumber already advanced past a completed pair
	}
	startMove := lastNum - lastIdx

	for i, pair := range gs.annotatedLog {
		num := startMove + i
		w := pair.White
		if w == "" {
			w = ".."
		}
		if pair.Black == "" {
			parts = append(parts, fmt.Sprintf("%d.%v", num, w))
		} else {
			parts = append(parts, fmt.Sprintf("%d.%v", num, w), pair.Black)
		}
	}
	return strings.Join(parts, " ")
}

// HasCastled reports whether color c has castled at any point in the
// game, reconstructed from the SAN move log rather than a board scan:
// SAN already records "O-O"/"O-O-O" explicitly, so no separate
// rook-or-king-moved bookkeeping is needed.
func (gs *GameState) HasCastled(c Color) bool {
	for _, pair := range gs.rawLog {
		san := pair.White
		if c == Black {
			san = pair.Black
		}
		if san == "O-O" || san == "O-O-O" {
			return true
		}
	}
	return false
}

// RepetitionCount returns how many times the current position's canonical
// fingerprint has occurred, including the current occurrence.
func (gs *GameState) RepetitionCount() int {
	return gs.ledger[gs.Fingerprint()]
}

// Clone deep-copies the state, including the board and the repetition
// ledger, for use by the transactional snapshot (C10).
func (gs *GameState) Clone() *GameState {
	ledger := make(map[string]int, len(gs.ledger))
	for k, v := range gs.ledger {
		ledger[k] = v
	}
	return &GameState{
		Board:          gs.Board.clone(),
		Turn:           gs.Turn,
		Castling:       gs.Castling,
		Chess960:       gs.Chess960,
		EnPassant:      gs.EnPassant,
		HalfMoveClock:  gs.HalfMoveClock,
		FullMoveNumber: gs.FullMoveNumber,
		rawLog:         append([]MovePair(nil), gs.rawLog...),
		annotatedLog:   append([]MovePair(nil), gs.annotatedLog...),
		ledger:         ledger,
	}
}
