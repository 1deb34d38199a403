package chess

import "fmt"

// ID is a piece's stable identity, independent of its square. HomeKind is
// the kind the piece was placed as (always Pawn for the 8 pawn slots of a
// color, the piece's own kind otherwise). Slot is 0-based within
// (Color, HomeKind). A promoted pawn keeps its HomeKind=Pawn identity
// forever; only its effective Kind (see Piece) changes.
type ID struct {
	Color    Color
	HomeKind Kind
	Slot     int
}

func (id ID) String() string {
	return fmt.Sprintf("%v%v%d", id.Color, id.HomeKind, id.Slot)
}

// Piece is a live piece: its identity, current effective kind (differs from
// ID.HomeKind only for a promoted pawn), and current square.
type Piece struct {
	ID     ID
	Kind   Kind // effective kind
	Square Square
}

// IsPromoted reports whether this piece is a pawn now moving as an officer.
func (p Piece) IsPromoted() bool {
	return p.ID.HomeKind == Pawn && p.Kind != Pawn
}

func (p Piece) String() string {
	return fmt.Sprintf("%v@%v", letter(p.ID.Color, p.Kind), p.Square)
}
