package chess

import (
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// ParsedSAN is a SAN token broken into its structural parts, before the
// from-square has been resolved against a position. The head/tail split
// mirrors the token classification used by other_examples/a4724b4f_barakmich-chess__san_decode.go.go,
// adapted to this module's resolve-by-speculative-apply algorithm.
type ParsedSAN struct {
	CastleKing  bool // O-O
	CastleQueen bool // O-O-O

	Kind      Kind // King for a king move; NoKind for a placement move of unspecified non-pawn kind is never produced
	Placement bool // "@" piece-drop variant; rejected at apply time in a standard game

	DisambigFile lang.Optional[File]
	DisambigRank lang.Optional[Rank]

	To        Square
	Capture   bool
	Promotion Kind // NoKind if not a promotion
}

// ParseSAN parses a single SAN token. Anything not matching one of the
// shapes fails with InvalidSAN.
func ParseSAN(s string) (ParsedSAN, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")
	if s == "" {
		return ParsedSAN{}, newError(InvalidSAN, "empty move")
	}

	if s == "O-O-O" || s == "0-0-0" {
		return ParsedSAN{CastleQueen: true}, nil
	}
	if s == "O-O" || s == "0-0" {
		return ParsedSAN{CastleKing: true}, nil
	}

	runes := []rune(s)

	// Piece-placement moves: "<piece letter>@<dest>" — parsed, rejected at apply
	// time on the standard (non-wild) board.
	if at := strings.IndexRune(s, '@'); at >= 0 {
		if at != 1 {
			return ParsedSAN{}, newError(InvalidSAN, "invalid placement move: %q", s)
		}
		kind, ok := ParseKind(runes[0])
		if !ok {
			return ParsedSAN{}, newError(InvalidSAN, "invalid placement piece: %q", s)
		}
		to, err := ParseSquareStr(s[at+1:])
		if err != nil {
			return ParsedSAN{}, newError(InvalidSAN, "invalid placement destination: %q", s)
		}
		return ParsedSAN{Kind: kind, Placement: true, To: to}, nil
	}

	capture := strings.ContainsRune(s, 'x')
	s = strings.ReplaceAll(s, "x", "")
	runes = []rune(s)

	var promotion Kind
	if eq := strings.IndexRune(s, '='); eq >= 0 {
		if eq != len(runes)-2 {
			return ParsedSAN{}, newError(InvalidSAN, "invalid promotion suffix: %q", s)
		}
		k, ok := ParseKind(runes[eq+1])
		if !ok || !k.IsPromotable() {
			return ParsedSAN{}, newError(InvalidSAN, "invalid promotion piece: %q", s)
		}
		promotion = k
		s = s[:eq]
		runes = []rune(s)
	}

	if len(runes) < 2 {
		return ParsedSAN{}, newError(InvalidSAN, "too short: %q", s)
	}

	// Last two characters are always the destination square.
	destStr := string(runes[len(runes)-2:])
	to, err := ParseSquareStr(destStr)
	if err != nil {
		return ParsedSAN{}, newError(InvalidSAN, "invalid destination: %q", s)
	}
	head := runes[:len(runes)-2]

	kind := Pawn
	if len(head) > 0 {
		if k, ok := parsePieceLetter(head[0]); ok {
			kind = k
			head = head[1:]
		} else if head[0] == 'P' {
			head = head[1:] // tolerated pawn prefix
		}
	}

	var df lang.Optional[File]
	var dr lang.Optional[Rank]
	switch len(head) {
	case 0:
		// no disambiguation
	case 1:
		if f, ok := ParseFile(head[0]); ok {
			df = lang.Some(f)
		} else if r, ok := ParseRank(head[0]); ok {
			dr = lang.Some(r)
		} else {
			return ParsedSAN{}, newError(InvalidSAN, "invalid disambiguation: %q", s)
		}
	case 2:
		f, ok1 := ParseFile(head[0])
		r, ok2 := ParseRank(head[1])
		if !ok1 || !ok2 {
			return ParsedSAN{}, newError(InvalidSAN, "invalid disambiguation: %q", s)
		}
		df, dr = lang.Some(f), lang.Some(r)
	default:
		return ParsedSAN{}, newError(InvalidSAN, "invalid move: %q", s)
	}

	if promotion != NoKind && kind != Pawn {
		return ParsedSAN{}, newError(InvalidSAN, "only pawns may promote: %q", s)
	}

	return ParsedSAN{
		Kind:         kind,
		DisambigFile: df,
		DisambigRank: dr,
		To:           to,
		Capture:      capture,
		Promotion:    promotion,
	}, nil
}

// parsePieceLetter recognizes the non-pawn SAN piece letters K/Q/R/B/N.
func parsePieceLetter(r rune) (Kind, bool) {
	switch r {
	case 'K':
		return King, true
	case 'Q':
		return Queen, true
	case 'R':
		return Rook, true
	case 'B':
		return Bishop, true
	case 'N':
		return Knight, true
	default:
		return NoKind, false
	}
}

// ResolveFrom finds the unique origin square for a parsed (non-castle) move:
// collect every same-color piece of the named kind whose move generator
// reaches the destination, then narrow by disambiguation, then, if still
// ambiguous, by speculatively playing each candidate and keeping only those
// that leave the mover's own king safe.
func ResolveFrom(gs *GameState, p ParsedSAN) (Square, error) {
	var candidates []*Piece
	var moverHasKind bool
	for _, piece := range gs.Board.Pieces(gs.Turn) {
		if piece.Kind != p.Kind {
			continue
		}
		moverHasKind = true
		if f, ok := p.DisambigFile.V(); ok && piece.Square.File() != f {
			continue
		}
		if r, ok := p.DisambigRank.V(); ok && piece.Square.Rank() != r {
			continue
		}
		if contains(Destinations(gs, piece.Square), p.To) {
			candidates = append(candidates, piece)
		}
	}

	if len(candidates) == 0 {
		// A piece of this kind and color exists somewhere on the board but
		// none of them (after disambiguation) can actually reach the target:
		// distinguish that from there being no such piece at all.
		if moverHasKind {
			return NoSquare, newErrorf(CantMoveThatWay, map[string]string{"piece": p.Kind.Name(), "square": p.To.String()},
				"{piece} cannot reach {square}")
		}
		// No piece of this kind on the mover's side, but the opponent has
		// one: the SAN likely named the wrong side's piece for whose turn
		// it is.
		for _, piece := range gs.Board.Pieces(gs.Turn.Opponent()) {
			if piece.Kind == p.Kind {
				return NoSquare, newErrorf(WrongColor, map[string]string{"piece": p.Kind.Name(), "color": gs.Turn.Name()},
					"it is {color}'s move")
			}
		}
		return NoSquare, newErrorf(NoPieceCanDoThat, map[string]string{"piece": p.Kind.Name(), "square": p.To.String()},
			"no {piece} can reach {square}")
	}
	if len(candidates) == 1 {
		return candidates[0].Square, nil
	}

	var safe []Square
	for _, c := range candidates {
		from := c.Square // leavesOwnKingSafe moves c on a board it then discards
		if leavesOwnKingSafe(gs, from, p.To, p.Promotion) {
			safe = append(safe, from)
		}
	}
	if len(safe) == 1 {
		return safe[0], nil
	}
	return NoSquare, newErrorf(Ambiguous, map[string]string{"piece": p.Kind.Name(), "square": p.To.String()},
		"ambiguous {piece} move to {square}")
}

// leavesOwnKingSafe speculatively applies from->to (ignoring SAN metadata)
// and reports whether the mover's own king is safe afterward, restoring the
// position unconditionally.
func leavesOwnKingSafe(gs *GameState, from, to Square, promotion Kind) bool {
	var tx transaction
	tx.begin(gs)
	mover := gs.Turn
	applyRawMove(gs, from, to, promotion)
	safe := len(InCheck(gs, mover)) == 0
	*gs = *tx.rollback()
	return safe
}

// applyRawMove performs the bare board mutation for from->to (capture,
// relocate, en-passant removal, promotion) without any legality checking,
// logging or metadata bookkeeping. Used both by leavesOwnKingSafe and as
// the physical-move step of the real applier in apply.go.
func applyRawMove(gs *GameState, from, to Square, promotion Kind) {
	piece, _ := gs.Board.PieceAt(from)
	if piece.Kind == Pawn {
		if ep, ok := gs.EnPassant.V(); ok && to == ep && gs.Board.squares[to] == nil {
			capSq := NewSquare(to.File(), from.Rank())
			gs.Board.capture(capSq)
		}
	}
	gs.Board.capture(to)
	gs.Board.relocate(piece, to)
	if piece.Kind == Pawn && (to.Rank() == Rank1 || to.Rank() == Rank8) {
		k := promotion
		if k == NoKind {
			k = Queen
		}
		gs.Board.promote(piece, k)
	}
}

// RenderSAN produces the minimal SAN for an already-resolved from/to move,
// Piece letter (omitted for pawns), the smallest
// disambiguation that distinguishes it from alternative same-kind origins
// reaching the same destination, "x" iff it captures, the destination, and
// a "=Q/R/B/N" suffix for promotion. Castling is detected and rendered as
// O-O/O-O-O. Check/mate suffixes are not
// rendered here; they are appended by the applier once the move has been
// played.
func RenderSAN(gs *GameState, from, to Square, promotion Kind) (string, error) {
	mover, ok := gs.Board.PieceAt(from)
	if !ok {
		return "", newErrorf(NoPiece, map[string]string{"square": from.String()}, "no piece on {square}")
	}

	if mover.Kind == King {
		if san, ok := renderCastleSAN(gs, mover, to); ok {
			return san, nil
		}
	}

	target, captured := gs.Board.PieceAt(to)
	isCapture := captured && target.ID.Color != mover.ID.Color
	if mover.Kind == Pawn {
		if ep, ok := gs.EnPassant.V(); ok && to == ep {
			isCapture = true
		}
	}

	var sb strings.Builder
	if mover.Kind != Pawn {
		sb.WriteRune(rune(mover.Kind.String()[0]))
		sb.WriteString(disambiguation(gs, mover, to))
	} else if isCapture {
		sb.WriteString(from.File().String())
	}
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	if mover.Kind == Pawn && (to.Rank() == Rank1 || to.Rank() == Rank8) {
		k := promotion
		if k == NoKind {
			k = Queen
		}
		sb.WriteString("=" + k.String())
	}
	return sb.String(), nil
}

// renderCastleSAN recognizes a king move that should render as O-O/O-O-O,
// Landing on the castling home rank at either (i) a square two or
// more files away in the castling direction while rights are still present,
// or (ii) the target rook's home file (Chess960).
func renderCastleSAN(gs *GameState, king *Piece, to Square) (string, bool) {
	c := king.ID.Color
	homeRank := Rank1
	if c == Black {
		homeRank = Rank8
	}
	if king.Square.Rank() != homeRank || to.Rank() != homeRank {
		return "", false
	}

	kingSideRook, hasKS := castlingRookSquare(gs, c, true)
	queenSideRook, hasQS := castlingRookSquare(gs, c, false)

	delta := int(to.File()) - int(king.Square.File())
	if hasKS && gs.Castling.IsAllowed(KingSideRight(c)) && (delta >= 2 || to == kingSideRook) {
		return "O-O", true
	}
	if hasQS && gs.Castling.IsAllowed(QueenSideRight(c)) && (delta <= -2 || to == queenSideRook) {
		return "O-O-O", true
	}
	return "", false
}

// disambiguation returns the smallest SAN disambiguation token that
// distinguishes mover's move to `to` from other same-color, same-kind
// pieces that could also reach `to`: "" if unique, else file, else rank,
// else the full square.
func disambiguation(gs *GameState, mover *Piece, to Square) string {
	var others []*Piece
	for _, p := range gs.Board.Pieces(mover.ID.Color) {
		if p == mover || p.Kind != mover.Kind {
			continue
		}
		if contains(Destinations(gs, p.Square), to) {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return ""
	}

	fileUnique := true
	rankUnique := true
	for _, o := range others {
		if o.Square.File() == mover.Square.File() {
			fileUnique = false
		}
		if o.Square.Rank() == mover.Square.Rank() {
			rankUnique = false
		}
	}
	switch {
	case fileUnique:
		return mover.Square.File().String()
	case rankUnique:
		return mover.Square.Rank().String()
	default:
		return mover.Square.String()
	}
}
