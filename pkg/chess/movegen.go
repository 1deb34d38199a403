package chess

// Destinations returns every pseudo-legal destination square for the piece
// at from, respecting geometry and occupancy but ignoring whether the move
// leaves the mover's own king in check (the applier filters that by
// speculative apply + threat check). Castling is not included; see the
// King case below.
func Destinations(gs *GameState, from Square) []Square {
	p, ok := gs.Board.PieceAt(from)
	if !ok {
		return nil
	}

	switch p.Kind {
	case Knight:
		return filterOwn(gs.Board, p.ID.Color, KnightJumps(from))
	case King:
		// Castling is deliberately excluded here: it is not a single-square
		// relocation, so the speculative-apply/rollback machinery shared by
		// ResolveFrom, leavesOwnKingSafe and anyLegalMove (which all move a
		// piece from->to and nothing else) cannot evaluate it correctly. A
		// castle is only ever resolved and legality-checked through the
		// dedicated O-O/O-O-O path in apply.go (pushCastle), which walks the
		// king one square at a time and moves the rook too.
		return filterOwn(gs.Board, p.ID.Color, KingSteps(from))
	case Bishop:
		return rayDestinations(gs.Board, p.ID.Color, DiagonalRays(from))
	case Rook:
		return rayDestinations(gs.Board, p.ID.Color, OrthogonalRays(from))
	case Queen:
		dst := rayDestinations(gs.Board, p.ID.Color, DiagonalRays(from))
		return append(dst, rayDestinations(gs.Board, p.ID.Color, OrthogonalRays(from))...)
	case Pawn:
		return pawnDestinations(gs, p)
	default:
		return nil
	}
}

func filterOwn(b *Board, c Color, squares []Square) []Square {
	var ret []Square
	for _, sq := range squares {
		if occ, ok := b.PieceAt(sq); !ok || occ.ID.Color != c {
			ret = append(ret, sq)
		}
	}
	return ret
}

// rayDestinations takes, for each ray, the prefix up to but not including
// the first own-piece blocker, or up to and including the first enemy
// blocker, whichever comes first.
func rayDestinations(b *Board, c Color, rays [][]Square) []Square {
	var ret []Square
	for _, ray := range rays {
		for _, sq := range ray {
			occ, ok := b.PieceAt(sq)
			if !ok {
				ret = append(ret, sq)
				continue
			}
			if occ.ID.Color != c {
				ret = append(ret, sq)
			}
			break
		}
	}
	return ret
}

func pawnDestinations(gs *GameState, p *Piece) []Square {
	b := gs.Board
	c := p.ID.Color
	from := p.Square
	fwd := North
	startRank := Rank2
	if c == Black {
		fwd = South
		startRank = Rank7
	}

	var ret []Square

	one, ok := step(from, fwd)
	if !ok {
		return nil
	}
	oneEmpty := false
	if _, occ := b.PieceAt(one); !occ {
		ret = append(ret, one)
		oneEmpty = true
	}
	if oneEmpty && from.Rank() == startRank {
		if two, ok := step(one, fwd); ok {
			if _, occ := b.PieceAt(two); !occ {
				ret = append(ret, two)
			}
		}
	}

	for _, d := range diagonalOf(fwd) {
		to, ok := step(from, d)
		if !ok {
			continue
		}
		if occ, present := b.PieceAt(to); present {
			if occ.ID.Color != c {
				ret = append(ret, to)
			}
			continue
		}
		if ep, has := gs.EnPassant.V(); has && ep == to {
			ret = append(ret, to)
		}
	}
	return ret
}

// castlingRookSquare returns the current square of the castling rook for
// (color, kingside), using the Chess960 home files when enabled.
func castlingRookSquare(gs *GameState, c Color, kingSide bool) (Square, bool) {
	homeRank := Rank1
	if c == Black {
		homeRank = Rank8
	}
	if gs.Chess960.Enabled {
		f := gs.Chess960.QueenRookFile
		if kingSide {
			f = gs.Chess960.KingRookFile
		}
		sq := NewSquare(f, homeRank)
		p, ok := gs.Board.PieceAt(sq)
		if !ok || p.Kind != Rook || p.ID.Color != c {
			return NoSquare, false
		}
		return sq, true
	}
	f := FileA
	if kingSide {
		f = FileH
	}
	sq := NewSquare(f, homeRank)
	p, ok := gs.Board.PieceAt(sq)
	if !ok || p.Kind != Rook || p.ID.Color != c {
		return NoSquare, false
	}
	return sq, true
}

// kingCastleTarget returns the king's destination square: g-file kingside,
// c-file queenside, regardless of variant.
func kingCastleTarget(gs *GameState, c Color, kingSide bool) Square {
	homeRank := Rank1
	if c == Black {
		homeRank = Rank8
	}
	if kingSide {
		return NewSquare(FileG, homeRank)
	}
	return NewSquare(FileC, homeRank)
}

// rookCastleTarget returns the rook's destination square: f-file kingside,
// d-file queenside.
func rookCastleTarget(c Color, kingSide bool) Square {
	homeRank := Rank1
	if c == Black {
		homeRank = Rank8
	}
	if kingSide {
		return NewSquare(FileF, homeRank)
	}
	return NewSquare(FileD, homeRank)
}

// pathClear requires every square strictly between king and rook (and not
// equal to either's own square) to be empty.
func pathClear(b *Board, king, rook Square) bool {
	lo, hi := king, rook
	if lo > hi {
		lo, hi = hi, lo
	}
	for sq := lo; sq <= hi; sq++ {
		if sq == king || sq == rook {
			continue
		}
		if _, ok := b.PieceAt(sq); ok {
			return false
		}
	}
	return true
}
