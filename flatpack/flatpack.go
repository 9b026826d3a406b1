// Package flatpack tokenizes a byte stream against its own distinct-value
// alphabet (at most 256 symbols) and bitpacks the resulting indices, adding
// a trailing stop-bit marker so the element count can be recovered from the
// packed bytes alone, with no length field on the wire.
package flatpack

import (
	"fmt"
	"math/bits"

	"github.com/flowcodec/numcodec/bitpack"
	"github.com/flowcodec/numcodec/bitstream"
	"github.com/flowcodec/numcodec/errs"
	"github.com/flowcodec/numcodec/internal/pool"
)

// Bound returns a pessimistic upper bound, in bytes, on the packed output
// for n source bytes. It holds for every alphabet size: indices never take
// more than 8 bits each, so n indices plus the one-bit stop marker fit in
// n+1 bytes.
func Bound(n int) int {
	return n + 1
}

// bitsForAlphabet computes B = ceil(log2(A)), with the edge convention that
// a single-symbol alphabet still gets one bit so the stop marker has
// somewhere to live, and an empty alphabet needs zero.
func bitsForAlphabet(a int) uint {
	if a == 0 {
		return 0
	}
	if a == 1 {
		return 1
	}

	return uint(bits.Len(uint(a - 1)))
}

// Encode builds the ascending alphabet of src's distinct byte values into
// alphabetOut and the stop-bit-terminated, bitpacked index stream into
// packedOut, returning the alphabet size and the number of packed bytes
// written. alphabetOut must have capacity 256; packedOut must have capacity
// at least Bound(n).
func Encode(alphabetOut []byte, packedOut []byte, src []byte, n int) (int, int, error) {
	if len(alphabetOut) < 256 {
		return 0, 0, fmt.Errorf("alphabet buffer holds %d bytes, need 256: %w", len(alphabetOut), errs.ErrBufferTooSmall)
	}
	if len(src) < n {
		return 0, 0, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), n, errs.ErrBufferTooSmall)
	}
	if n == 0 {
		return 0, 0, nil
	}

	scratch, cleanup := pool.GetFlatPackScratch()
	defer cleanup()

	for i := 0; i < n; i++ {
		scratch.Present[src[i]] = true
	}

	a := 0
	for v := 0; v < 256; v++ {
		if scratch.Present[v] {
			alphabetOut[a] = byte(v)
			scratch.SymbolMap[v] = byte(a)
			a++
		}
	}

	b := bitsForAlphabet(a)

	indexBytes := bitpack.EncodeBound(n, b)
	need := indexBytes + 1
	if len(packedOut) < need {
		return 0, 0, fmt.Errorf("packed buffer holds %d bytes, need %d: %w", len(packedOut), need, errs.ErrBufferTooSmall)
	}

	writer := bitstream.NewFFWriter(packedOut)
	for i := 0; i < n; i++ {
		idx := uint64(scratch.SymbolMap[src[i]])
		if err := writer.Write(idx, b); err != nil {
			return 0, 0, err
		}
	}
	if err := writer.Write(1, 1); err != nil {
		return 0, 0, err
	}

	packedSize, err := writer.Finish()
	if err != nil {
		return 0, 0, err
	}

	return a, packedSize, nil
}

// stopMarkerBits returns how many bits of the final byte, counting from its
// least-significant bit, are used up to and including the stop marker: the
// position of the topmost 1-bit in that byte plus one.
func stopMarkerBits(last byte) (uint, error) {
	if last == 0 {
		return 0, fmt.Errorf("final byte carries no stop marker: %w", errs.ErrCorruption)
	}

	return uint(bits.Len8(last)), nil
}

// NumElts recovers the element count encoded in packed without decoding the
// values themselves, using the position of the stop marker in the final
// byte.
func NumElts(a int, packed []byte, packedSize int) (int, error) {
	b := bitsForAlphabet(a)
	if b == 0 {
		return 0, nil
	}
	if packedSize == 0 || len(packed) < packedSize {
		return 0, fmt.Errorf("packed buffer holds %d bytes, need %d: %w", len(packed), packedSize, errs.ErrBufferTooSmall)
	}

	markerPos, err := stopMarkerBits(packed[packedSize-1])
	if err != nil {
		return 0, err
	}

	totalBits := uint(8*(packedSize-1)) + markerPos
	if totalBits == 0 {
		return 0, fmt.Errorf("no data bits before stop marker: %w", errs.ErrCorruption)
	}

	return int((totalBits - 1) / b), nil
}

// Decode unpacks packed using the given alphabet (a symbols), translating
// each index back to its source byte, and returns the number of elements
// recovered. dst must have capacity at least NumElts(a, packed, packedSize).
func Decode(dst []byte, alphabet []byte, a int, packed []byte, packedSize int) (int, error) {
	if a < 0 || a > 256 {
		return 0, fmt.Errorf("alphabet size %d out of range: %w", a, errs.ErrInvalidParameter)
	}
	if len(alphabet) < a {
		return 0, fmt.Errorf("alphabet buffer holds %d bytes, need %d: %w", len(alphabet), a, errs.ErrBufferTooSmall)
	}

	n, err := NumElts(a, packed, packedSize)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if len(dst) < n {
		return 0, fmt.Errorf("destination holds %d bytes, need %d: %w", len(dst), n, errs.ErrBufferTooSmall)
	}

	b := bitsForAlphabet(a)
	reader := bitstream.NewFFReader(packed[:packedSize])

	for i := 0; i < n; i++ {
		idx, err := reader.Read(b)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}
		if int(idx) >= a {
			return 0, fmt.Errorf("index %d at or beyond alphabet size %d: %w", idx, a, errs.ErrCorruption)
		}

		dst[i] = alphabet[idx]
	}

	if err := verifyStopMarker(reader, n, b, packedSize); err != nil {
		return 0, err
	}

	return n, nil
}

// verifyStopMarker confirms the bit immediately following the last decoded
// element is the stop marker's 1-bit, that every bit after it up to
// packedSize is zero padding, and that the reader lands exactly on
// packedSize. This is the decode-side half of §4.5 step 5, without which a
// packed stream whose marker doesn't directly abut the last element (e.g. a
// stray data bit sits between them) would still decode silently.
func verifyStopMarker(reader *bitstream.FFReader, n int, b uint, packedSize int) error {
	marker, err := reader.Read(1)
	if err != nil {
		return fmt.Errorf("reading stop marker: %w", err)
	}
	if marker != 1 {
		return fmt.Errorf("stop marker bit not set immediately after element %d: %w", n-1, errs.ErrCorruption)
	}

	consumed := n*int(b) + 1
	if remaining := 8*packedSize - consumed; remaining > 0 {
		pad, err := reader.Read(uint(remaining))
		if err != nil {
			return fmt.Errorf("reading trailing padding: %w", err)
		}
		if pad != 0 {
			return fmt.Errorf("non-zero bits after stop marker: %w", errs.ErrCorruption)
		}
	}

	if reader.Pos() != packedSize {
		return fmt.Errorf("stream cursor at byte %d, want %d: %w", reader.Pos(), packedSize, errs.ErrCorruption)
	}

	return nil
}
