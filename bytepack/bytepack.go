// Package bytepack implements the byte-aligned fast path of BitPack: packing
// widths that are a whole number of bytes need no bit shifting at all, just
// a truncated little-endian copy of each element.
package bytepack

import (
	"fmt"

	"github.com/flowcodec/numcodec/errs"
)

// Bound returns the exact packed size, in bytes, for n elements packed at
// nbytes bytes each.
func Bound(n int, nbytes int) int {
	return n * nbytes
}

// Encode writes the low nbytes bytes of each of the n little-endian,
// w-byte-wide elements in src into dst, little-endian, with no gaps.
// nbytes must be in [1, w].
func Encode(dst []byte, src []byte, n int, w int, nbytes int) (int, error) {
	if nbytes < 1 || nbytes > w {
		return 0, fmt.Errorf("byte width %d out of range for element width %d: %w", nbytes, w, errs.ErrInvalidParameter)
	}

	need := n * w
	if len(src) < need {
		return 0, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), need, errs.ErrBufferTooSmall)
	}

	out := n * nbytes
	if len(dst) < out {
		return 0, fmt.Errorf("destination holds %d bytes, need %d: %w", len(dst), out, errs.ErrBufferTooSmall)
	}

	for i := 0; i < n; i++ {
		copy(dst[i*nbytes:(i+1)*nbytes], src[i*w:i*w+nbytes])
	}

	return out, nil
}

// Decode is the inverse of Encode: it reads n elements of nbytes bytes each
// from src and zero-extends them into w-byte-wide little-endian elements in
// dst, returning the number of bytes consumed from src (n*nbytes).
func Decode(dst []byte, n int, w int, src []byte, nbytes int) (int, error) {
	if nbytes < 1 || nbytes > w {
		return 0, fmt.Errorf("byte width %d out of range for element width %d: %w", nbytes, w, errs.ErrInvalidParameter)
	}

	need := n * nbytes
	if len(src) < need {
		return 0, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), need, errs.ErrBufferTooSmall)
	}

	out := n * w
	if len(dst) < out {
		return 0, fmt.Errorf("destination holds %d bytes, need %d: %w", len(dst), out, errs.ErrBufferTooSmall)
	}

	for i := 0; i < n; i++ {
		elt := dst[i*w : (i+1)*w]
		copy(elt, src[i*nbytes:(i+1)*nbytes])
		for j := nbytes; j < w; j++ {
			elt[j] = 0
		}
	}

	return need, nil
}
