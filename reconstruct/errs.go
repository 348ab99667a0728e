package reconstruct

import "errors"

// ErrInconsistent marks a position bookkeeping conflict. It is always
// recovered locally via verbatim fallback and surfaces only in
// diagnostics, never as a returned error.
var ErrInconsistent = errors.New("reconstruction inconsistency")
