package ir

import "errors"

var (
	errInternal = errors.New("internal error")

	ErrBadKind   = errors.New("bad kind")
	ErrInvariant = errors.New("invariant violation")
)
