// Package fen decodes and encodes Forsyth-Edwards Notation, including the
// Chess960 (Shuffle960) castling-letter variant. Works field-by-field
// (rank/file scan, digit compression, castling-letter parsing, trailing-
// field defaulting), with a full FEN error taxonomy and Chess960 letter
// rendering layered on top (see DESIGN.md's Open Question decisions).
package fen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/herohde/piotchess/pkg/chess"
)

// Decode parses a FEN string into a GameState. The full 6-field form is
// accepted as-is; missing trailing fields are defaulted: a
// 3-field FEN (placement/turn/castling) gets "- 0 1" appended, a 4-field
// FEN (...en-passant) gets "0 1" appended, and a 5-field FEN (...half-move
// clock) gets "1" appended. Any other field count fails with FenCount.
func Decode(s string) (*chess.GameState, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, chess.KindError(chess.EmptyFen, "empty fen string")
	}

	fields := strings.Fields(s)
	switch len(fields) {
	case 3:
		fields = append(fields, "-", "0", "1")
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	case 6:
	default:
		return nil, chess.KindError(chess.FenCount, "expected 3-6 space-separated fields, got %d", len(fields))
	}

	board, chess960, err := decodePlacement(fields[0])
	if err != nil {
		return nil, err
	}

	turn, ok := chess.ParseColor(fields[1])
	if !ok {
		return nil, chess.KindError(chess.FenTomoveWrong, "invalid side to move: %q", fields[1])
	}

	castling, c960rights, err := decodeCastling(fields[2], board, chess960)
	if err != nil {
		return nil, err
	}

	enPassant, err := decodeEnPassant(fields[3])
	if err != nil {
		return nil, err
	}

	halfMove, err := decodeNonNegativeInt(fields[4], chess.FenInvalidPly)
	if err != nil {
		return nil, err
	}
	fullMove, err := decodeNonNegativeInt(fields[5], chess.FenInvalidMoveNumber)
	if err != nil {
		return nil, err
	}
	if fullMove == 0 {
		return nil, chess.KindError(chess.FenInvalidMoveNumber, "full-move number must be at least 1")
	}

	return chess.NewGameState(board, turn, castling, c960rights, enPassant, halfMove, fullMove), nil
}

func decodeNonNegativeInt(s string, kind chess.ErrKind) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, chess.KindError(kind, "invalid integer field: %q", s)
	}
	return n, nil
}

// decodePlacement parses field 1 and also records the files of each
// color's king and rooks on its home rank, so decodeCastling can validate
// Chess960 castling letters against them. It does not itself decide
// whether the position is Chess960; decodeCastling does.
func decodePlacement(field string) (*chess.Board, chess960Layout, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) < 8 {
		return nil, chess960Layout{}, chess.KindError(chess.FenTooLittle, "placement field has only %d ranks", len(ranks))
	}
	if len(ranks) > 8 {
		return nil, chess960Layout{}, chess.KindError(chess.FenTooMuch, "placement field has %d ranks", len(ranks))
	}

	board := chess.NewBlankBoard()
	var layout chess960Layout

	for i, rankStr := range ranks {
		rank := chess.Rank(7 - i)
		file := 0
		for _, r := range rankStr {
			if unicode.IsDigit(r) {
				n := int(r - '0')
				if n < 1 || n > 8 {
					return nil, chess960Layout{}, chess.KindError(chess.FenInvalidPiece, "invalid empty-square count %q", string(r))
				}
				file += n
				continue
			}
			kind, ok := chess.ParseKind(r)
			if !ok {
				return nil, chess960Layout{}, chess.KindError(chess.FenInvalidPiece, "invalid piece letter %q", string(r))
			}
			if file >= 8 {
				return nil, chess960Layout{}, chess.KindError(chess.FenTooMuch, "rank %d overflows 8 files", i+1)
			}
			color := chess.Black
			if unicode.IsUpper(r) {
				color = chess.White
			}
			sq := chess.NewSquare(chess.File(file), rank)
			if _, existing := board.PieceAt(sq); existing {
				return nil, chess960Layout{}, chess.KindError(chess.FenMultiPiece, "square %v specified twice", sq)
			}
			if _, err := board.Place(color, kind, sq); err != nil {
				return nil, chess960Layout{}, err
			}
			layout.note(color, kind, chess.File(file), rank)
			file++
		}
		if file != 8 {
			kind := chess.FenTooLittle
			if file > 8 {
				kind = chess.FenTooMuch
			}
			return nil, chess960Layout{}, chess.KindError(kind, "rank %d has %d files, want 8", i+1, file)
		}
	}

	return board, layout, nil
}

// chess960Layout records, while scanning the placement field, where each
// color's king and rooks landed on their home rank — used to validate and
// render Chess960 castling rights without a second board scan.
type chess960Layout struct {
	whiteKing, blackKing         lang.Optional[chess.File]
	whiteRooks, blackRooks       []chess.File
}

func (l *chess960Layout) note(c chess.Color, k chess.Kind, f chess.File, r chess.Rank) {
	homeRank := chess.Rank1
	if c == chess.Black {
		homeRank = chess.Rank8
	}
	if r != homeRank {
		return
	}
	switch k {
	case chess.King:
		if c == chess.White {
			l.whiteKing = lang.Some(f)
		} else {
			l.blackKing = lang.Some(f)
		}
	case chess.Rook:
		if c == chess.White {
			l.whiteRooks = append(l.whiteRooks, f)
		} else {
			l.blackRooks = append(l.blackRooks, f)
		}
	}
}

// decodeCastling parses field 3. A standard "KQkq"-only string is always
// accepted at the standard a/h rook files. Any other letters are read as
// Chess960 home files and must be symmetric between White and Black:
// asymmetric home files fail loudly with FenCastleWrong rather than
// silently trusting one side (see DESIGN.md's Open Question decisions).
func decodeCastling(field string, board *chess.Board, layout chess960Layout) (chess.Castling, chess.Chess960Rights, error) {
	if len(field) > 4 {
		return 0, chess.Chess960Rights{}, chess.KindError(chess.FenCastleTooLong, "castling field too long: %q", field)
	}
	if field == "-" {
		return chess.NoCastling, chess.Chess960Rights{}, nil
	}

	standardLetters := true
	for _, r := range field {
		switch r {
		case 'K', 'Q', 'k', 'q':
		default:
			standardLetters = false
		}
	}

	if standardLetters {
		var c chess.Castling
		for _, r := range field {
			switch r {
			case 'K':
				c |= chess.WhiteKingSide
			case 'Q':
				c |= chess.WhiteQueenSide
			case 'k':
				c |= chess.BlackKingSide
			case 'q':
				c |= chess.BlackQueenSide
			}
		}
		return c, chess.Chess960Rights{}, nil
	}

	wk, ok := layout.whiteKing.V()
	if !ok {
		return 0, chess.Chess960Rights{}, chess.KindError(chess.FenCastleWrong, "no white king found for chess960 castling rights")
	}
	bk, ok := layout.blackKing.V()
	if !ok || bk != wk {
		return 0, chess.Chess960Rights{}, chess.KindError(chess.FenCastleWrong, "white and black king home files are not symmetric")
	}

	kingRookFile, queenRookFile, err := rookHomeFiles(layout.whiteRooks, wk)
	if err != nil {
		return 0, chess.Chess960Rights{}, err
	}
	blackKR, blackQR, err := rookHomeFiles(layout.blackRooks, bk)
	if err != nil {
		return 0, chess.Chess960Rights{}, err
	}
	if blackKR != kingRookFile || blackQR != queenRookFile {
		return 0, chess.Chess960Rights{}, chess.KindError(chess.FenCastleWrong, "white and black rook home files are not symmetric")
	}

	var c chess.Castling
	for _, r := range field {
		switch {
		case unicode.IsUpper(r) && r-'A'+'a' == rune(kingRookFile.String()[0]):
			c |= chess.WhiteKingSide
		case unicode.IsUpper(r) && r-'A'+'a' == rune(queenRookFile.String()[0]):
			c |= chess.WhiteQueenSide
		case unicode.IsLower(r) && r == rune(kingRookFile.String()[0]):
			c |= chess.BlackKingSide
		case unicode.IsLower(r) && r == rune(queenRookFile.String()[0]):
			c |= chess.BlackQueenSide
		}
	}

	rights := chess.Chess960Rights{Enabled: true, KingFile: wk, KingRookFile: kingRookFile, QueenRookFile: queenRookFile}
	return c, rights, nil
}

// rookHomeFiles splits a color's back-rank rooks into (king-side,
// queen-side) by their position relative to the king file.
func rookHomeFiles(rooks []chess.File, kingFile chess.File) (kingSide, queenSide chess.File, err error) {
	var ks, qs []chess.File
	for _, f := range rooks {
		if f > kingFile {
			ks = append(ks, f)
		} else if f < kingFile {
			qs = append(qs, f)
		}
	}
	if len(ks) == 0 || len(qs) == 0 {
		return 0, 0, chess.KindError(chess.FenCastleWrong, "rooks are not found on both sides of the king")
	}
	return ks[len(ks)-1], qs[0], nil
}

func decodeEnPassant(field string) (lang.Optional[chess.Square], error) {
	if field == "-" {
		return lang.None[chess.Square](), nil
	}
	sq, err := chess.ParseSquareStr(field)
	if err != nil || (sq.Rank() != chess.Rank3 && sq.Rank() != chess.Rank6) {
		return lang.None[chess.Square](), chess.KindError(chess.FenInvalidEnPassant, "invalid en passant square: %q", field)
	}
	return lang.Some(sq), nil
}

// Encode renders a GameState as a full 6-field FEN string.
func Encode(gs *chess.GameState) string {
	var sb strings.Builder
	sb.WriteString(placementField(gs.Board))
	sb.WriteByte(' ')
	sb.WriteString(gs.Turn.String())
	sb.WriteByte(' ')
	sb.WriteString(castlingField(gs))
	sb.WriteByte(' ')
	if sq, ok := gs.EnPassant.V(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(gs.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(gs.FullMoveNumber))
	return sb.String()
}

func placementField(b *chess.Board) string {
	return b.String()
}

func castlingField(gs *chess.GameState) string {
	if !gs.Chess960.Enabled {
		return gs.Castling.String()
	}
	if gs.Castling == chess.NoCastling {
		return "-"
	}
	kr, qr := gs.Chess960.KingRookFile, gs.Chess960.QueenRookFile
	standard := kr == chess.FileH && qr == chess.FileA

	var sb strings.Builder
	if gs.Castling.IsAllowed(chess.WhiteKingSide) {
		if standard {
			sb.WriteByte('K')
		} else {
			sb.WriteString(strings.ToUpper(kr.String()))
		}
	}
	if gs.Castling.IsAllowed(chess.WhiteQueenSide) {
		if standard {
			sb.WriteByte('Q')
		} else {
			sb.WriteString(strings.ToUpper(qr.String()))
		}
	}
	if gs.Castling.IsAllowed(chess.BlackKingSide) {
		if standard {
			sb.WriteByte('k')
		} else {
			sb.WriteString(kr.String())
		}
	}
	if gs.Castling.IsAllowed(chess.BlackQueenSide) {
		if standard {
			sb.WriteByte('q')
		} else {
			sb.WriteString(qr.String())
		}
	}
	return sb.String()
}
