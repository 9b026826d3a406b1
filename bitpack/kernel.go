package bitpack

import (
	"fmt"

	"github.com/flowcodec/numcodec/bitstream"
	"github.com/flowcodec/numcodec/endian"
	"github.com/flowcodec/numcodec/errs"
)

var le = endian.GetLittleEndianEngine()

// loadElement reads the i'th little-endian, w-byte element out of src.
func loadElement(src []byte, w int, i int) uint64 {
	off := i * w
	switch w {
	case 1:
		return uint64(src[off])
	case 2:
		return uint64(le.Uint16(src[off:]))
	case 4:
		return uint64(le.Uint32(src[off:]))
	default:
		return le.Uint64(src[off:])
	}
}

// storeElement writes v's low w bytes, little-endian, into the i'th slot of
// dst.
func storeElement(dst []byte, w int, i int, v uint64) {
	off := i * w
	switch w {
	case 1:
		dst[off] = byte(v)
	case 2:
		le.PutUint16(dst[off:], uint16(v))
	case 4:
		le.PutUint32(dst[off:], uint32(v))
	default:
		le.PutUint64(dst[off:], v)
	}
}

// scalarPack is the generic reference kernel described in §4.2: it walks
// the accumulator one element at a time, masking each to its low k bits.
// Every optimized path in this package must match its output exactly.
func scalarPack(dst []byte, src []byte, n int, w int, k uint) (int, error) {
	writer := bitstream.NewFFWriter(dst)

	mask := elementMask(k)
	for i := 0; i < n; i++ {
		v := loadElement(src, w, i) & mask
		if err := writer.Write(v, k); err != nil {
			return 0, err
		}
	}

	return writer.Finish()
}

func scalarUnpack(dst []byte, n int, w int, src []byte, k uint) (int, error) {
	reader := bitstream.NewFFReader(src)

	for i := 0; i < n; i++ {
		v, err := reader.Read(k)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}

		storeElement(dst, w, i, v)
	}

	return reader.Pos(), nil
}

func elementMask(k uint) uint64 {
	if k >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << k) - 1
}

// verifyScalar reports whether every element of src fits within k bits.
func verifyScalar(src []byte, n int, w int, k uint) bool {
	mask := elementMask(k)
	for i := 0; i < n; i++ {
		v := loadElement(src, w, i)
		if v&^mask != 0 {
			return false
		}
	}

	return true
}

// pack1Bit implements the n<=64, K=1 special case: one bit per element
// packed LSB-first into a single u64, then emitted as ceil(n/8) bytes.
func pack1Bit(dst []byte, src []byte, n int, w int) (int, error) {
	need := (n + 7) / 8
	if len(dst) < need {
		return 0, fmt.Errorf("need %d bytes for %d 1-bit elements: %w", need, n, errs.ErrBufferTooSmall)
	}

	var acc uint64
	for i := 0; i < n; i++ {
		if loadElement(src, w, i)&1 != 0 {
			acc |= 1 << uint(i)
		}
	}

	for i := 0; i < need; i++ {
		dst[i] = byte(acc >> (8 * i))
	}

	return need, nil
}

func unpack1Bit(dst []byte, n int, w int, src []byte) (int, error) {
	need := (n + 7) / 8
	if len(src) < need {
		return 0, fmt.Errorf("need %d bytes for %d 1-bit elements: %w", need, n, errs.ErrBufferTooSmall)
	}

	var acc uint64
	for i := 0; i < need; i++ {
		acc |= uint64(src[i]) << (8 * i)
	}

	for i := 0; i < n; i++ {
		storeElement(dst, w, i, (acc>>uint(i))&1)
	}

	return need, nil
}
