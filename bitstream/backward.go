package bitstream

import (
	"fmt"
	"math/bits"

	"github.com/flowcodec/numcodec/errs"
)

// BFWriter emits variable-width bit fields back to front: the first value
// written ends up occupying the highest bit positions of the stream, and
// bytes are committed starting from the end of buf moving toward the start.
// Finish appends a "10...0" sentinel that marks, when the stream is later
// read forward from byte 0, where the real data begins.
//
// Because each new field is inserted below the existing accumulator
// contents (the accumulator is shifted left to make room, then the new
// value is OR'd into the vacated low bits) rather than above them, reading
// the finished stream forward recovers values in the reverse of the order
// they were written. Codecs that consume a BF stream are written with this
// in mind; it is not a defect to "fix".
type BFWriter struct {
	buf []byte
	pos int // next free index from the end; bytes are written at pos-1, pos-2, ...
	acc uint64
	nb  uint
}

// NewBFWriter creates a writer that emits into buf starting from its end.
func NewBFWriter(buf []byte) *BFWriter {
	return &BFWriter{buf: buf, pos: len(buf)}
}

// Write packs the low k bits of v into the stream. k may be 0..64.
func (w *BFWriter) Write(v uint64, k uint) error {
	if k == 0 {
		return nil
	}
	if k > 64 {
		return fmt.Errorf("bit width %d exceeds 64: %w", k, errs.ErrInvalidParameter)
	}

	for k > 0 {
		chunk := k
		if chunk > maxChunkBits {
			chunk = maxChunkBits
		}

		// Take the chunk's highest bits first so reassembling chunk by chunk
		// preserves the original bit order within v.
		shift := k - chunk
		bits := (v >> shift) & mask(chunk)
		if err := w.writeChunk(bits, chunk); err != nil {
			return err
		}

		k -= chunk
	}

	return nil
}

func (w *BFWriter) writeChunk(v uint64, k uint) error {
	w.acc = (w.acc << k) | (v & mask(k))
	w.nb += k

	return w.drain()
}

func (w *BFWriter) drain() error {
	for w.nb >= 8 {
		if w.pos == 0 {
			return fmt.Errorf("no room for byte: %w", errs.ErrBufferTooSmall)
		}

		b := byte(w.acc >> (w.nb - 8))
		w.pos--
		w.buf[w.pos] = b
		w.nb -= 8
		w.acc &= mask(w.nb)
	}

	return nil
}

// Finish appends the terminating sentinel and returns the total number of
// bytes written (counted from the end of buf).
func (w *BFWriter) Finish() (int, error) {
	extraBits := 8 - (w.nb % 8)
	// nb%8==0 (including nb==0, the fully byte-aligned case) yields
	// extraBits==8: a dedicated all-marker byte, matching the original
	// source's convention rather than a degenerate zero-width marker.
	marker := uint64(1) << (extraBits - 1)

	w.acc = (w.acc << extraBits) | marker
	w.nb += extraBits

	if err := w.drain(); err != nil {
		return len(w.buf) - w.pos, err
	}

	return len(w.buf) - w.pos, nil
}

// BFReader consumes a BF stream forward from byte 0, after having located
// and skipped the sentinel written by BFWriter.Finish. Values come back in
// the reverse of the order they were written.
type BFReader struct {
	ff *FFReader
}

// NewBFReader locates the sentinel at the start of buf and returns a reader
// positioned just past it, ready to read the data values forward. It
// returns ErrCorruption if buf is empty or its first byte carries no
// sentinel bit.
func NewBFReader(buf []byte) (*BFReader, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("empty buffer: %w", errs.ErrCorruption)
	}

	first := buf[0]
	if first == 0 {
		return nil, fmt.Errorf("no sentinel bit in leading byte: %w", errs.ErrCorruption)
	}

	markerWidth := uint(bits.TrailingZeros8(first)) + 1

	ff := NewFFReader(buf)
	if _, err := ff.Read(markerWidth); err != nil {
		return nil, fmt.Errorf("skipping sentinel: %w", err)
	}

	return &BFReader{ff: ff}, nil
}

// Read extracts the next k bits following the sentinel, in the reverse of
// BFWriter's write order.
func (r *BFReader) Read(k uint) (uint64, error) {
	return r.ff.Read(k)
}
