// Package delta implements the forward and inverse delta transform: an
// array becomes its first element plus the successive differences between
// consecutive elements, recoverable by a running prefix sum. All arithmetic
// wraps modulo 2^(8*W); this is intentional and load-bearing, not a bug to
// guard against.
package delta

import (
	"fmt"

	"github.com/flowcodec/numcodec/errs"
)

func loadElement(src []byte, w int, i int) uint64 {
	off := i * w
	var v uint64
	for j := 0; j < w; j++ {
		v |= uint64(src[off+j]) << (8 * j)
	}

	return v
}

func storeElement(dst []byte, w int, i int, v uint64) {
	off := i * w
	for j := 0; j < w; j++ {
		dst[off+j] = byte(v >> (8 * j))
	}
}

func wrapMask(w int) uint64 {
	if w == 8 {
		return ^uint64(0)
	}

	return (uint64(1) << (8 * w)) - 1
}

func validateWidth(w int) error {
	switch w {
	case 1, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("element width %d not in {1,2,4,8}: %w", w, errs.ErrInvalidParameter)
	}
}

// Encode splits the n little-endian, w-byte elements in src into a leading
// element (dstFirst, w bytes) and n-1 successive differences (dstDeltas,
// (n-1)*w bytes), each difference taken modulo 2^(8*w). n==0 writes nothing
// and is not an error; n==1 writes only dstFirst.
func Encode(dstFirst []byte, dstDeltas []byte, src []byte, n int, w int) error {
	if err := validateWidth(w); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if len(src) < n*w {
		return fmt.Errorf("source holds %d bytes, need %d: %w", len(src), n*w, errs.ErrBufferTooSmall)
	}
	if len(dstFirst) < w {
		return fmt.Errorf("dstFirst holds %d bytes, need %d: %w", len(dstFirst), w, errs.ErrBufferTooSmall)
	}
	if need := (n - 1) * w; len(dstDeltas) < need {
		return fmt.Errorf("dstDeltas holds %d bytes, need %d: %w", len(dstDeltas), need, errs.ErrBufferTooSmall)
	}

	copy(dstFirst[:w], src[:w])

	mask := wrapMask(w)
	prev := loadElement(src, w, 0)
	for i := 1; i < n; i++ {
		cur := loadElement(src, w, i)
		d := (cur - prev) & mask
		storeElement(dstDeltas, w, i-1, d)
		prev = cur
	}

	return nil
}

// Decode reconstructs the n-element, w-byte-wide little-endian array from a
// leading element and n-1 successive differences, by running prefix sum
// modulo 2^(8*w).
func Decode(dst []byte, first []byte, deltas []byte, n int, w int) error {
	if err := validateWidth(w); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if len(first) < w {
		return fmt.Errorf("first holds %d bytes, need %d: %w", len(first), w, errs.ErrBufferTooSmall)
	}
	if need := (n - 1) * w; len(deltas) < need {
		return fmt.Errorf("deltas holds %d bytes, need %d: %w", len(deltas), need, errs.ErrBufferTooSmall)
	}
	if need := n * w; len(dst) < need {
		return fmt.Errorf("destination holds %d bytes, need %d: %w", len(dst), need, errs.ErrBufferTooSmall)
	}

	mask := wrapMask(w)
	prev := loadElement(first, w, 0)
	storeElement(dst, w, 0, prev)

	for i := 1; i < n; i++ {
		d := loadElement(deltas, w, i-1)
		cur := (prev + d) & mask
		storeElement(dst, w, i, cur)
		prev = cur
	}

	return nil
}
