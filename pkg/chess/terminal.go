package chess

// Terminal detection: checkmate, stalemate, the 50-move and repetition
// draws, and insufficient material. Every query here is read-only — none
// of them touch the move log or the repetition ledger; a caller can ask
// "is this stalemate" without committing to having played anything.

// IsCheckmate reports whether the side to move is in check with no legal
// reply.
func IsCheckmate(gs *GameState) bool {
	return len(InCheck(gs, gs.Turn)) > 0 && !anyLegalMove(gs, gs.Turn)
}

// IsStalemate reports whether the side to move is not in check but has no
// legal move.
func IsStalemate(gs *GameState) bool {
	return len(InCheck(gs, gs.Turn)) == 0 && !anyLegalMove(gs, gs.Turn)
}

// FiftyMoveClaimable reports whether either player may claim a draw under
// the 50-move rule (100 half-moves without a capture or pawn move).
func FiftyMoveClaimable(gs *GameState) bool {
	return gs.HalfMoveClock >= 100
}

// ThreefoldClaimable reports whether the current position has occurred
// three times, entitling either player to claim a draw. Unlike the
// fivefold case, this is not automatic.
func ThreefoldClaimable(gs *GameState) bool {
	return gs.RepetitionCount() >= 3
}

// FivefoldForced reports whether the current position has occurred five
// times, which forces a draw with no claim required.
func FivefoldForced(gs *GameState) bool {
	return gs.RepetitionCount() >= 5
}

// materialProfile tallies one color's surviving non-king material for the
// insufficient-material check.
type materialProfile struct {
	heavy   bool // any pawn, rook, or queen: always sufficient on its own
	bishops int
	knights int
}

func materialProfileOf(b *Board, c Color) materialProfile {
	var p materialProfile
	for _, piece := range b.Pieces(c) {
		switch piece.Kind {
		case Pawn, Rook, Queen:
			p.heavy = true
		case Bishop:
			p.bishops++
		case Knight:
			p.knights++
		}
	}
	return p
}

func (p materialProfile) minors() int {
	return p.bishops + p.knights
}

// IsInsufficientMaterial reports whether neither side has enough material
// left to force checkmate: king vs king, king+minor vs king, king+bishop
// vs king+same-colored-bishop, king+knight vs king+minor, or
// king+two-knights vs king (two knights cannot force mate unassisted by
// the defender).
func IsInsufficientMaterial(gs *GameState) bool {
	w := materialProfileOf(gs.Board, White)
	b := materialProfileOf(gs.Board, Black)
	if w.heavy || b.heavy {
		return false
	}

	switch {
	case w.minors()+b.minors() == 0:
		return true // K vs K
	case w.minors()+b.minors() == 1:
		return true // K + minor vs K
	case w.minors() == 1 && b.minors() == 1:
		if w.bishops == 1 && b.bishops == 1 {
			return sameColoredBishops(gs.Board) // K+B vs K+B only draws with matching bishop color
		}
		return true // K+B vs K+N, K+N vs K+N: K + minor vs K + minor
	case w.knights == 2 && w.bishops == 0 && b.minors() == 0:
		return true // KNN vs K
	case b.knights == 2 && b.bishops == 0 && w.minors() == 0:
		return true // K vs KNN
	default:
		return false
	}
}

func sameColoredBishops(b *Board) bool {
	var wc, bc DiagColor
	for _, p := range b.Pieces(White) {
		if p.Kind == Bishop {
			wc = p.Square.DiagonalColor()
		}
	}
	for _, p := range b.Pieces(Black) {
		if p.Kind == Bishop {
			bc = p.Square.DiagonalColor()
		}
	}
	return wc == bc
}

// HasMatingMaterial reports whether color c's surviving material, taken
// alone, is ever enough to force checkmate with best play: a queen, rook
// or pawn (which can promote), two bishops, three or more knights, or a
// bishop and a knight. K+N+N, like K+N or K+B alone, cannot force mate
// against a king that merely avoids cooperating, so it reports false.
// Supplements the draw detection above with a query useful to callers
// deciding whether to keep playing on a bare-king-vs-king-and-pawn ending.
func HasMatingMaterial(gs *GameState, c Color) bool {
	p := materialProfileOf(gs.Board, c)
	if p.heavy {
		return true
	}
	if p.bishops >= 2 {
		return true
	}
	if p.knights >= 3 {
		return true
	}
	if p.bishops >= 1 && p.knights >= 1 {
		return true
	}
	return false
}

// IsCheckmate, IsStalemate, GameOver, FiftyMoveClaimable, ThreefoldClaimable
// and FivefoldForced all have Game-level conveniences that read the live
// state without requiring the caller to reach into State().
func (g *Game) IsCheckmate() bool            { return IsCheckmate(g.state) }
func (g *Game) IsStalemate() bool            { return IsStalemate(g.state) }
func (g *Game) FiftyMoveClaimable() bool     { return FiftyMoveClaimable(g.state) }
func (g *Game) ThreefoldClaimable() bool     { return ThreefoldClaimable(g.state) }
func (g *Game) FivefoldForced() bool         { return FivefoldForced(g.state) }
func (g *Game) IsInsufficientMaterial() bool { return IsInsufficientMaterial(g.state) }
func (g *Game) GameOver() Result             { return GameOver(g.state) }

// Result is the outcome GameOver reports: "W" or "B" on checkmate (the
// winning color, per the data model's Color representation), DrawResult on
// a forced draw, or NoResult while play continues.
type Result string

const (
	DrawResult Result = "D"
	NoResult   Result = ""
)

// GameOver reports whether the game has reached an automatic (non-claimed)
// terminal state: the winning color ("W"/"B") on checkmate, DrawResult on
// stalemate, insufficient material, or a fivefold repetition, and NoResult
// otherwise. The 50-move rule and threefold repetition are deliberately
// excluded here since both require a player's claim rather than ending the
// game on their own.
func GameOver(gs *GameState) Result {
	switch {
	case IsCheckmate(gs):
		if gs.Turn.Opponent() == White {
			return Result("W")
		}
		return Result("B")
	case IsStalemate(gs), IsInsufficientMaterial(gs), FivefoldForced(gs):
		return DrawResult
	default:
		return NoResult
	}
}
