package parse

import (
	"errors"
	"fmt"

	"github.com/docfix/go-docfix/token"
)

var ErrParse = errors.New("parse error")

// Error is an unrecoverable syntax error. Offset is the byte offset of
// the offending input; Pos adds line/column and a context sample.
type Error struct {
	Offset int
	Pos    *token.Pos
	Msg    string
}

func (e *Error) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%v: %s %s", ErrParse, e.Msg, e.Pos)
	}
	return fmt.Sprintf("%v: %s at offset %d", ErrParse, e.Msg, e.Offset)
}

func (e *Error) Unwrap() error {
	return ErrParse
}

func errAt(pd *token.PosDoc, off int, format string, args ...any) *Error {
	return &Error{
		Offset: off,
		Pos:    pd.Pos(off),
		Msg:    fmt.Sprintf(format, args...),
	}
}
