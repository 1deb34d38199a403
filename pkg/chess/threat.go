package chess

// AttackersOf returns every piece of color `by` that attacks square sq,
// using the piece's capture/attack pattern (pawns use diagonals, not their
// move pattern) and stopping sliding rays at the first blocker of either
// color.
func AttackersOf(b *Board, sq Square, by Color) []*Piece {
	var ret []*Piece
	for _, p := range b.Pieces(by) {
		if attacks(b, p, sq) {
			ret = append(ret, p)
		}
	}
	return ret
}

// IsAttacked reports whether sq is attacked by any piece of color `by`.
func IsAttacked(b *Board, sq Square, by Color) bool {
	for _, p := range b.Pieces(by) {
		if attacks(b, p, sq) {
			return true
		}
	}
	return false
}

func attacks(b *Board, p *Piece, target Square) bool {
	switch p.Kind {
	case Pawn:
		return contains(PawnAttacks(p.ID.Color, p.Square), target)
	case Knight:
		return contains(KnightJumps(p.Square), target)
	case King:
		return contains(KingSteps(p.Square), target)
	case Bishop:
		return rayContains(b, DiagonalRays(p.Square), target)
	case Rook:
		return rayContains(b, OrthogonalRays(p.Square), target)
	case Queen:
		return rayContains(b, DiagonalRays(p.Square), target) || rayContains(b, OrthogonalRays(p.Square), target)
	default:
		return false
	}
}

func rayContains(b *Board, rays [][]Square, target Square) bool {
	for _, ray := range rays {
		for _, sq := range ray {
			if sq == target {
				return true
			}
			if _, occ := b.PieceAt(sq); occ {
				break
			}
		}
	}
	return false
}

func contains(squares []Square, target Square) bool {
	for _, sq := range squares {
		if sq == target {
			return true
		}
	}
	return false
}

// InCheck returns the list of pieces currently checking color c's king: nil
// if not in check, one element for a single check, two for a double check.
func InCheck(gs *GameState, c Color) []*Piece {
	king := gs.Board.King(c)
	if king == nil {
		return nil
	}
	return AttackersOf(gs.Board, king.Square, c.Opponent())
}

// PathToKing returns the squares on which a piece could interpose or
// capture to resolve a check from attacker against king: the attacker's own
// square for a knight (capture-only), else the inclusive ray prefix from
// king toward attacker.
func PathToKing(attacker *Piece, king Square) []Square {
	if attacker.Kind == Knight || attacker.Kind == Pawn {
		return []Square{attacker.Square}
	}
	for _, rays := range [][][]Square{OrthogonalRays(king), DiagonalRays(king)} {
		for _, ray := range rays {
			for _, sq := range ray {
				if sq == attacker.Square {
					return append(rayPrefix(ray, sq), attacker.Square)
				}
			}
		}
	}
	return []Square{attacker.Square}
}

// rayPrefix returns every square in ray strictly before stop (exclusive).
func rayPrefix(ray []Square, stop Square) []Square {
	var ret []Square
	for _, sq := range ray {
		if sq == stop {
			break
		}
		ret = append(ret, sq)
	}
	return ret
}
