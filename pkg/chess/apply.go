package chess

import "github.com/seekerror/stdlib/pkg/lang"

// Game is the public entry point for playing a position forward: a
// GameState owning the full move lifecycle: parse, resolve, speculatively
// apply, check, commit or roll back. The tx field is not used; each
// legality check opens its own local transaction (C10).
type Game struct {
	state *GameState
	tx    transaction
}

// NewGame starts a new game from the standard opening position.
func NewGame() *Game {
	return &Game{state: NewStartingState()}
}

// NewGameFromState adopts an already-built state (typically decoded from a
// FEN by pkg/chess/fen) as the current position.
func NewGameFromState(gs *GameState) *Game {
	return &Game{state: gs}
}

// State returns the live GameState. Callers must not mutate it directly;
// all mutation goes through Push*.
func (g *Game) State() *GameState {
	return g.state
}

// PushSAN parses and applies a single SAN move, returning the canonical
// (possibly disambiguated, possibly +/#-annotated) SAN actually logged.
func (g *Game) PushSAN(san string) (string, error) {
	parsed, err := ParseSAN(san)
	if err != nil {
		return "", err
	}
	return g.push(parsed)
}

// PushSquares applies the move from->to (with an optional promotion target)
// by first rendering it to SAN against the current position and re-parsing
// it, so square-pair and SAN entry share one code path.
func (g *Game) PushSquares(from, to Square, promotion Kind) (string, error) {
	san, err := RenderSAN(g.state, from, to, promotion)
	if err != nil {
		return "", err
	}
	return g.PushSAN(san)
}

func (g *Game) push(parsed ParsedSAN) (string, error) {
	if parsed.Placement {
		if parsed.Kind == Pawn && (parsed.To.Rank() == Rank1 || parsed.To.Rank() == Rank8) {
			return "", newError(CantPlaceOnBackRank, "a pawn cannot be placed on the back rank")
		}
		return "", newError(InvalidSAN, "piece-placement moves are not supported")
	}
	if parsed.CastleKing || parsed.CastleQueen {
		return g.pushCastle(parsed.CastleKing)
	}

	from, err := ResolveFrom(g.state, parsed)
	if err != nil {
		return "", err
	}
	return g.pushNormal(from, parsed)
}

// pushCastle handles the castling branch: rights, empty path, and a
// step-by-step walk of the king toward its target checking for attack at
// every square (including the start), since a king may not castle out of,
// through, or into check.
func (g *Game) pushCastle(kingSide bool) (string, error) {
	gs := g.state
	mover := gs.Turn

	kingTarget, rookTarget, err := castleLegality(gs, mover, kingSide)
	if err != nil {
		return "", err
	}

	king := gs.Board.King(mover)
	rookSq, _ := castlingRookSquare(gs, mover, kingSide)
	rook, _ := gs.Board.PieceAt(rookSq)

	var tx transaction
	tx.begin(gs)
	performCastle(gs.Board, king, rook, kingTarget, rookTarget)
	tx.commit()

	gs.Castling = gs.Castling.Clear(KingSideRight(mover)).Clear(QueenSideRight(mover))
	gs.EnPassant = lang.None[Square]()
	gs.HalfMoveClock++

	san := "O-O"
	if !kingSide {
		san = "O-O-O"
	}
	return g.finishMove(mover, san), nil
}

// castleLegality checks every precondition for mover to castle on the given
// side — not already in check, rights still held, rook in place with a
// clear path, and a king walk that never crosses or lands on an attacked
// square — returning the king/rook target squares on success. Shared by
// pushCastle (which needs the specific failure reason) and anyLegalMove
// (which only needs to know a legal castle exists).
func castleLegality(gs *GameState, mover Color, kingSide bool) (kingTarget, rookTarget Square, err error) {
	king := gs.Board.King(mover)

	if len(InCheck(gs, mover)) > 0 {
		return NoSquare, NoSquare, newError(InCheck, "%v cannot castle while in check", mover)
	}

	right := QueenSideRight(mover)
	failKind := CantCastleQueenside
	if kingSide {
		right = KingSideRight(mover)
		failKind = CantCastleKingside
	}
	if !gs.Castling.IsAllowed(right) {
		return NoSquare, NoSquare, newError(failKind, "%v has no castling rights on that side", mover)
	}

	rookSq, ok := castlingRookSquare(gs, mover, kingSide)
	if !ok {
		return NoSquare, NoSquare, newError(CastlePiecesInWay, "no rook available to castle with")
	}
	if !pathClear(gs.Board, king.Square, rookSq) {
		return NoSquare, NoSquare, newError(CastlePiecesInWay, "pieces stand between king and rook")
	}

	kingTarget = kingCastleTarget(gs, mover, kingSide)
	rookTarget = rookCastleTarget(mover, kingSide)

	walk := kingWalk(king.Square, kingTarget)
	for _, sq := range walk[1:] {
		if IsAttacked(gs.Board, sq, mover.Opponent()) {
			return NoSquare, NoSquare, newError(CastleWouldCheck, "king would pass through or land on an attacked square")
		}
	}
	return kingTarget, rookTarget, nil
}

// kingWalk returns every square the king crosses while castling, from its
// start square to its target, inclusive, in file order.
func kingWalk(from, to Square) []Square {
	step := Square(1)
	if to < from {
		step = -1
	}
	ret := []Square{from}
	for sq := from; sq != to; sq += step {
		ret = append(ret, sq+step)
	}
	return ret
}

// performCastle relocates king and rook to their final squares in one
// shot, clearing both source squares first so a Chess960 swap (where a
// target square coincides with the other piece's source square) can never
// clobber the piece still sitting there.
func performCastle(b *Board, king, rook *Piece, kingTarget, rookTarget Square) {
	b.squares[king.Square] = nil
	b.squares[rook.Square] = nil
	king.Square = kingTarget
	rook.Square = rookTarget
	b.squares[kingTarget] = king
	b.squares[rookTarget] = rook
}

// pushNormal handles the non-castle branch: resolve capture/en
// passant, speculatively apply, reject if the mover's own king ends up in
// check, then commit and update the clocks, rights, log and ledger.
func (g *Game) pushNormal(from Square, parsed ParsedSAN) (string, error) {
	gs := g.state
	mover := gs.Turn
	piece, _ := gs.Board.PieceAt(from)

	target, hasTarget := gs.Board.PieceAt(parsed.To)
	if hasTarget && target.ID.Color == mover {
		return "", newErrorf(CantCaptureOwn, map[string]string{"piece": target.Kind.Name()}, "cannot capture your own {piece}")
	}

	isEnPassant := false
	if piece.Kind == Pawn {
		if ep, ok := gs.EnPassant.V(); ok && parsed.To == ep && !hasTarget {
			isEnPassant = true
		}
	}

	promoRank := Rank8
	if mover == Black {
		promoRank = Rank1
	}
	if parsed.Promotion != NoKind {
		if piece.Kind != Pawn {
			return "", newError(InvalidPromote, "only a pawn may promote")
		}
		if parsed.To.Rank() != promoRank {
			return "", newError(InvalidPromote, "promotion only happens on the back rank")
		}
	}

	if parsed.Capture && !hasTarget && !isEnPassant {
		return "", newErrorf(NoPiece, map[string]string{"square": parsed.To.String()}, "no piece to capture on {square}")
	}

	sanText, err := RenderSAN(gs, from, parsed.To, parsed.Promotion)
	if err != nil {
		return "", err
	}

	wasInCheck := len(InCheck(gs, mover)) > 0
	isPawnMove := piece.Kind == Pawn
	isDoubleStep := isPawnMove && absRank(parsed.To.Rank(), from.Rank()) == 2
	isCapture := hasTarget || isEnPassant

	var tx transaction
	tx.begin(gs)
	applyRawMove(gs, from, parsed.To, parsed.Promotion)
	if len(InCheck(gs, mover)) > 0 {
		*gs = *tx.rollback()
		if wasInCheck {
			return "", newError(StillInCheck, "%v is still in check", mover)
		}
		return "", newError(MoveWouldCheck, "that move leaves %v's king in check", mover)
	}
	tx.commit()

	if isPawnMove || isCapture {
		gs.HalfMoveClock = 0
	} else {
		gs.HalfMoveClock++
	}

	if isDoubleStep {
		mid := NewSquare(from.File(), (from.Rank()+parsed.To.Rank())/2)
		gs.EnPassant = lang.Some(mid)
	} else {
		gs.EnPassant = lang.None[Square]()
	}

	clearCastlingRightsFor(gs, mover, from, parsed.To, piece)

	return g.finishMove(mover, sanText), nil
}

// absRank returns the absolute difference between two ranks.
func absRank(a, b Rank) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// clearCastlingRightsFor drops rights made stale by a king move, a rook
// moving off its home square, or a rook being captured on its home square.
func clearCastlingRightsFor(gs *GameState, mover Color, from, to Square, moved *Piece) {
	if moved.Kind == King {
		gs.Castling = gs.Castling.Clear(KingSideRight(mover)).Clear(QueenSideRight(mover))
		return
	}
	if kr, ok := castlingRookSquareIgnoringPiece(gs, mover, true); ok && (from == kr || to == kr) {
		gs.Castling = gs.Castling.Clear(KingSideRight(mover))
	}
	if qr, ok := castlingRookSquareIgnoringPiece(gs, mover, false); ok && (from == qr || to == qr) {
		gs.Castling = gs.Castling.Clear(QueenSideRight(mover))
	}

	opp := mover.Opponent()
	oppHomeRank := Rank1
	if opp == Black {
		oppHomeRank = Rank8
	}
	if to.Rank() == oppHomeRank {
		if kr, ok := castlingRookSquareIgnoringPiece(gs, opp, true); ok && to == kr {
			gs.Castling = gs.Castling.Clear(KingSideRight(opp))
		}
		if qr, ok := castlingRookSquareIgnoringPiece(gs, opp, false); ok && to == qr {
			gs.Castling = gs.Castling.Clear(QueenSideRight(opp))
		}
	}
}

// castlingRookSquareIgnoringPiece returns the home-file square a castling
// rook starts from, without requiring a rook still be there — used after
// the move has been applied, when the square may now be empty (rook moved)
// or hold a different piece (rook captured).
func castlingRookSquareIgnoringPiece(gs *GameState, c Color, kingSide bool) (Square, bool) {
	homeRank := Rank1
	if c == Black {
		homeRank = Rank8
	}
	if gs.Chess960.Enabled {
		f := gs.Chess960.QueenRookFile
		if kingSide {
			f = gs.Chess960.KingRookFile
		}
		return NewSquare(f, homeRank), true
	}
	f := FileA
	if kingSide {
		f = FileH
	}
	return NewSquare(f, homeRank), true
}

// finishMove flips the turn, advances the full-move counter, appends to
// both move logs (annotating the just-finished half with +/# once the
// opponent's replies are known), and folds the new position into the
// repetition ledger. Returns the annotated SAN actually recorded.
func (g *Game) finishMove(mover Color, san string) string {
	gs := g.state

	opp := mover.Opponent()
	annotated := san
	if len(InCheck(gs, opp)) > 0 {
		if anyLegalMove(gs, opp) {
			annotated += "+"
		} else {
			annotated += "#"
		}
	}

	appendMove(gs, mover, san, annotated)

	gs.Turn = opp
	if mover == Black {
		gs.FullMoveNumber++
	}

	fp := gs.Fingerprint()
	gs.ledger[fp]++

	return annotated
}

// appendMove appends one half-move to both the raw and annotated logs,
// starting a new MovePair on White's half and completing the open one on
// Black's.
func appendMove(gs *GameState, mover Color, raw, annotated string) {
	if mover == White {
		gs.rawLog = append(gs.rawLog, MovePair{White: raw})
		gs.annotatedLog = append(gs.annotatedLog, MovePair{White: annotated})
		return
	}
	if n := len(gs.rawLog); n > 0 && gs.rawLog[n-1].Black == "" {
		gs.rawLog[n-1].Black = raw
		gs.annotatedLog[n-1].Black = annotated
		return
	}
	gs.rawLog = append(gs.rawLog, MovePair{Black: raw})
	gs.annotatedLog = append(gs.annotatedLog, MovePair{Black: annotated})
}

// anyLegalMove reports whether color c has at least one legal move: some
// pseudo-legal destination, for some piece, that does not leave its own
// king in check afterward, or a castle it may legally play. Shared by the
// +/# SAN suffix above and by checkmate/stalemate detection (terminal.go).
func anyLegalMove(gs *GameState, c Color) bool {
	for _, p := range gs.Board.Pieces(c) {
		// leavesOwnKingSafe moves p on a board it then discards, so read its
		// square once up front.
		from := p.Square
		for _, to := range Destinations(gs, from) {
			if leavesOwnKingSafe(gs, from, to, Queen) {
				return true
			}
		}
	}
	if _, _, err := castleLegality(gs, c, true); err == nil {
		return true
	}
	if _, _, err := castleLegality(gs, c, false); err == nil {
		return true
	}
	return false
}
