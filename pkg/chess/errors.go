package chess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKind tags an Error with a stable, switchable kind so callers can
// branch on failure reason instead of string-matching a message.
type ErrKind string

const (
	InvalidSAN           ErrKind = "InvalidSAN"
	FenCount             ErrKind = "FenCount"
	EmptyFen             ErrKind = "EmptyFen"
	FenTooMuch           ErrKind = "FenTooMuch"
	FenTooLittle         ErrKind = "FenTooLittle"
	FenTomoveWrong       ErrKind = "FenTomoveWrong"
	FenCastleTooLong     ErrKind = "FenCastleTooLong"
	FenCastleWrong       ErrKind = "FenCastleWrong"
	FenInvalidEnPassant  ErrKind = "FenInvalidEnPassant"
	FenInvalidPly        ErrKind = "FenInvalidPly"
	FenInvalidMoveNumber ErrKind = "FenInvalidMoveNumber"
	FenInvalidPiece      ErrKind = "FenInvalidPiece"
	FenMultiPiece        ErrKind = "FenMultiPiece"
	InCheck              ErrKind = "InCheck"
	CantCastleKingside   ErrKind = "CantCastleKingside"
	CantCastleQueenside  ErrKind = "CantCastleQueenside"
	CastlePiecesInWay    ErrKind = "CastlePiecesInWay"
	CastleWouldCheck     ErrKind = "CastleWouldCheck"
	MoveWouldCheck       ErrKind = "MoveWouldCheck"
	StillInCheck         ErrKind = "StillInCheck"
	CantCaptureOwn       ErrKind = "CantCaptureOwn"
	NoPiece              ErrKind = "NoPiece"
	WrongColor           ErrKind = "WrongColor"
	CantMoveThatWay      ErrKind = "CantMoveThatWay"
	TooManyKing          ErrKind = "TooManyKing"
	TooManyQueen         ErrKind = "TooManyQueen"
	TooManyRook          ErrKind = "TooManyRook"
	TooManyBishop        ErrKind = "TooManyBishop"
	TooManyKnight        ErrKind = "TooManyKnight"
	TooManyPawn          ErrKind = "TooManyPawn"
	DuplicateSquare      ErrKind = "DuplicateSquare"
	InvalidSquare        ErrKind = "InvalidSquare"
	InvalidPiece         ErrKind = "InvalidPiece"
	InvalidPromote       ErrKind = "InvalidPromote"
	Ambiguous            ErrKind = "Ambiguous"
	NoPieceCanDoThat     ErrKind = "NoPieceCanDoThat"
	CantPlaceOnBackRank  ErrKind = "CantPlaceOnBackRank"
)

// Error is the tagged error value every operation returns on failure. No
// operation in this package panics on user input.
type Error struct {
	Kind   ErrKind
	Fields map[string]string // named placeholders substituted into the template
	msg    string
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns nil: an Error wraps no other error. errors.Is(err,
// chess.ErrKind(...)) style matching is not supported (ErrKind is not an
// error); use KindOf, or errors.As and the Kind field.
func (e *Error) Unwrap() error {
	return nil
}

func newError(kind ErrKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(string(kind)+": "+format, args...)}
}

// KindError builds a tagged *Error for use by sibling packages (pkg/chess/fen,
// pkg/chess/pmn) that cannot reach the unexported constructors here.
func KindError(kind ErrKind, format string, args ...interface{}) *Error {
	return newError(kind, format, args...)
}

// NewFieldError builds a tagged *Error from a {placeholder} template, for use
// by sibling packages.
func NewFieldError(kind ErrKind, fields map[string]string, template string) *Error {
	return newErrorf(kind, fields, template)
}

// newErrorf builds an error whose human-readable template names placeholders
// like "{color}" or "{piece}", substituted from fields using the piece's or
// color's full English name.
func newErrorf(kind ErrKind, fields map[string]string, template string) *Error {
	msg := template
	for k, v := range fields {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return &Error{Kind: kind, Fields: fields, msg: fmt.Sprintf("%v: %v", kind, msg)}
}

// KindOf extracts the ErrKind from err, if it is (or wraps) a *chess.Error.
func KindOf(err error) (ErrKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}
