package token

import "errors"

var (
	ErrUnbalanced = errors.New("unbalanced delimiter")
	ErrScanStart  = errors.New("scan start is not a delimiter")
)
