package chess_test

import "github.com/herohde/piotchess/pkg/chess"

func sq(f chess.File, r chess.Rank) chess.Square {
	return chess.NewSquare(f, r)
}
