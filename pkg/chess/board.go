package chess

import (
	"fmt"
	"strings"
)

// pieceSet tracks the live and captured pieces of one color, keyed by a
// stable (HomeKind, Slot) identity. Officers beyond the initial complement
// (extra queens, etc.) consume an unused pawn slot: their ID.HomeKind is
// Pawn even though their effective Kind is not. This bounds total pieces
// per color at 16 and makes the capture tally free: any pawn slot whose
// Piece.Square is NoSquare is a captured piece.
type pieceSet struct {
	king     *Piece
	officers map[Kind][]*Piece // Queen, Rook, Bishop, Knight; index = Slot
	pawns    [8]*Piece         // index = Slot; nil until placed
}

func newPieceSet() *pieceSet {
	return &pieceSet{
		officers: map[Kind][]*Piece{
			Queen:  nil,
			Rook:   nil,
			Bishop: nil,
			Knight: nil,
		},
	}
}

func (s *pieceSet) homeCount(k Kind) int {
	if k == King {
		if s.king != nil {
			return 1
		}
		return 0
	}
	if k == Pawn {
		n := 0
		for _, p := range s.pawns {
			if p != nil {
				n++
			}
		}
		return n
	}
	return len(s.officers[k])
}

func (s *pieceSet) freePawnSlot() (int, bool) {
	for i, p := range s.pawns {
		if p == nil {
			return i, true
		}
	}
	return 0, false
}

// all returns every piece ever placed for this color, live or captured.
func (s *pieceSet) all() []*Piece {
	var ret []*Piece
	if s.king != nil {
		ret = append(ret, s.king)
	}
	for _, k := range []Kind{Queen, Rook, Bishop, Knight} {
		ret = append(ret, s.officers[k]...)
	}
	for _, p := range s.pawns {
		if p != nil {
			ret = append(ret, p)
		}
	}
	return ret
}

// Board is a total mapping of 64 squares to piece identities, plus the
// per-color piece tables backing capture accounting (C1).
type Board struct {
	squares [64]*Piece
	sets    [2]*pieceSet
}

func NewBlankBoard() *Board {
	return &Board{sets: [2]*pieceSet{newPieceSet(), newPieceSet()}}
}

// Place adds a new piece identity at square. Officer overflow (a second
// queen from promotion, say) consumes an unused pawn slot rather than
// failing; see pieceSet above.
func (b *Board) Place(color Color, kind Kind, sq Square) (*Piece, error) {
	if !sq.IsValid() {
		return nil, newError(InvalidSquare, "square %v is not a valid square", sq)
	}
	if !kind.IsValid() {
		return nil, newError(InvalidPiece, "kind %v is not a valid piece kind", kind)
	}
	if b.squares[sq] != nil {
		return nil, newError(DuplicateSquare, "square %v is already occupied", sq)
	}

	s := b.sets[color]

	var p *Piece
	switch {
	case kind == King:
		if s.king != nil {
			return nil, newErrorf(TooManyKing, map[string]string{"color": color.Name()}, "{color} already has a king")
		}
		p = &Piece{ID: ID{Color: color, HomeKind: King, Slot: 0}, Kind: King, Square: sq}
		s.king = p

	case kind == Pawn:
		if s.homeCount(Pawn) >= maxHomeCount[Pawn] {
			return nil, newErrorf(TooManyPawn, map[string]string{"color": color.Name()}, "{color} already has all pawn slots filled")
		}
		slot, _ := s.freePawnSlot()
		p = &Piece{ID: ID{Color: color, HomeKind: Pawn, Slot: slot}, Kind: Pawn, Square: sq}
		s.pawns[slot] = p

	default: // officer: Queen, Rook, Bishop, Knight
		if s.homeCount(kind) < maxHomeCount[kind] {
			slot := len(s.officers[kind])
			p = &Piece{ID: ID{Color: color, HomeKind: kind, Slot: slot}, Kind: kind, Square: sq}
			s.officers[kind] = append(s.officers[kind], p)
		} else {
			slot, ok := s.freePawnSlot()
			if !ok {
				return nil, newErrorf(tooManyKindErr(kind), map[string]string{"color": color.Name(), "piece": kind.Name()}, "{color} has no free pawn slot for an extra {piece}")
			}
			p = &Piece{ID: ID{Color: color, HomeKind: Pawn, Slot: slot}, Kind: kind, Square: sq}
			s.pawns[slot] = p
		}
	}

	b.squares[sq] = p
	return p, nil
}

func tooManyKindErr(k Kind) ErrKind {
	switch k {
	case Queen:
		return TooManyQueen
	case Rook:
		return TooManyRook
	case Bishop:
		return TooManyBishop
	case Knight:
		return TooManyKnight
	default:
		return TooManyPawn
	}
}

// Remove detaches whatever piece occupies square from the board entirely,
// freeing the square but keeping the identity's slot permanently allocated.
// Used for initial-position editing; the move applier uses capture instead,
// which also retains the piece for capture accounting.
func (b *Board) Remove(sq Square) {
	if p := b.squares[sq]; p != nil {
		p.Square = NoSquare
		b.squares[sq] = nil
	}
}

// PieceAt returns the piece occupying square, if any.
func (b *Board) PieceAt(sq Square) (*Piece, bool) {
	if !sq.IsValid() {
		return nil, false
	}
	p := b.squares[sq]
	return p, p != nil
}

// Locate returns the current square of the given identity, if it is live.
func (b *Board) Locate(id ID) (Square, bool) {
	s := b.sets[id.Color]
	var p *Piece
	switch id.HomeKind {
	case King:
		p = s.king
	case Pawn:
		if id.Slot >= 0 && id.Slot < len(s.pawns) {
			p = s.pawns[id.Slot]
		}
	default:
		if os := s.officers[id.HomeKind]; id.Slot >= 0 && id.Slot < len(os) {
			p = os[id.Slot]
		}
	}
	if p == nil || p.Square == NoSquare {
		return NoSquare, false
	}
	return p.Square, true
}

// King returns the live king of the given color. Every valid board has one.
func (b *Board) King(c Color) *Piece {
	return b.sets[c].king
}

// Pieces returns every live piece of the given color.
func (b *Board) Pieces(c Color) []*Piece {
	var ret []*Piece
	for _, p := range b.sets[c].all() {
		if p.Square != NoSquare {
			ret = append(ret, p)
		}
	}
	return ret
}

// relocate moves a live piece to dest, updating the square mapping. Used by
// the move applier; does not touch identity or effective kind.
func (b *Board) relocate(p *Piece, dest Square) {
	b.squares[p.Square] = nil
	p.Square = dest
	b.squares[dest] = p
}

// capture removes whatever piece sits at sq (marking it captured) and
// returns it, for use by the move applier.
func (b *Board) capture(sq Square) *Piece {
	p := b.squares[sq]
	if p != nil {
		p.Square = NoSquare
		b.squares[sq] = nil
	}
	return p
}

// promote changes a live piece's effective kind in place (pawn reaching the
// back rank). Identity is untouched.
func (b *Board) promote(p *Piece, kind Kind) {
	p.Kind = kind
}

// clone deep-copies the board, including piece identities (new pointers),
// for use by the transactional snapshot (C10).
func (b *Board) clone() *Board {
	nb := NewBlankBoard()
	for c := ZeroColor; c < NumColors; c++ {
		src := b.sets[c]
		dst := nb.sets[c]
		if src.king != nil {
			k := *src.king
			dst.king = &k
			if k.Square != NoSquare {
				nb.squares[k.Square] = dst.king
			}
		}
		for _, kind := range []Kind{Queen, Rook, Bishop, Knight} {
			for _, p := range src.officers[kind] {
				cp := *p
				dst.officers[kind] = append(dst.officers[kind], &cp)
				if cp.Square != NoSquare {
					nb.squares[cp.Square] = &cp
				}
			}
		}
		for i, p := range src.pawns {
			if p == nil {
				continue
			}
			cp := *p
			dst.pawns[i] = &cp
			if cp.Square != NoSquare {
				nb.squares[cp.Square] = &cp
			}
		}
	}
	return nb
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		empties := 0
		for f := ZeroFile; f < NumFiles; f++ {
			sq := NewSquare(f, Rank(r))
			if p, ok := b.PieceAt(sq); ok {
				if empties > 0 {
					fmt.Fprintf(&sb, "%d", empties)
					empties = 0
				}
				sb.WriteRune(letter(p.ID.Color, p.Kind))
			} else {
				empties++
			}
		}
		if empties > 0 {
			fmt.Fprintf(&sb, "%d", empties)
		}
		if r > int(Rank1) {
			sb.WriteRune('/')
		}
	}
	return sb.String()
}
