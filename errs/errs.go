// Package errs defines the sentinel error values returned by this module's codecs.
//
// Every exported codec function reports failure by returning one of these
// values (optionally wrapped with fmt.Errorf's %w to add detail). Callers
// should test with errors.Is, not string comparison.
package errs

import "errors"

var (
	// ErrInvalidParameter indicates a caller-supplied parameter is outside its
	// valid domain: an element width not in {1,2,4,8}, a bit width greater
	// than 8*W, or a merge source count above 64. A nil buffer paired with a
	// non-zero length is not reported with this error; the codecs treat it
	// as a zero-length buffer and return ErrBufferTooSmall.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBufferTooSmall indicates a caller-provided buffer lacks the capacity
	// a codec requires, on either the source or destination side.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrCorruption indicates a decode-side structural check failed: a
	// missing or malformed stop marker, a FlatPack index at or beyond the
	// alphabet size, or a bitstream missing its terminating sentinel.
	ErrCorruption = errors.New("corrupted data")

	// ErrAllocationFailed indicates a bounded scratch allocation could not be
	// satisfied.
	ErrAllocationFailed = errors.New("allocation failed")
)
