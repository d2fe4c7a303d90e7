package filter

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// these, together with the offending clause text and, for ErrRange, the
// valid bounds.
var (
	ErrSyntax         = errors.New("filter syntax error")
	ErrRange          = errors.New("filter range error")
	ErrNameResolution = errors.New("name resolution error")
	ErrLookup         = errors.New("name lookup failed")
)
