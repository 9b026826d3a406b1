package bitstream

import (
	"fmt"

	"github.com/flowcodec/numcodec/errs"
)

// maxChunkBits is the largest field Write/Read ever handles in one pass
// through the accumulator. Keeping it well under 64 means the leftover bits
// from a previous call (at most 7, since every call drains full bytes before
// returning) can never push the accumulator past 64 bits, regardless of how
// wide the caller's field is.
const maxChunkBits = 32

// FFWriter emits variable-width bit fields into buf, front to back, in the
// natural little-endian bit order used by BitPack and FlatPack.
//
// Unlike the accumulate-then-flush discipline of a register-level bit
// writer, Write drains whole bytes out of the accumulator before returning,
// so at most 7 bits are ever held between calls. This removes any
// accumulator-width hazard for wide field widths; callers may pass any k in
// [0, 64] without needing to reason about prior call state.
type FFWriter struct {
	buf []byte
	pos int
	acc uint64
	nb  uint
}

// NewFFWriter creates a writer that emits into buf starting at offset 0.
func NewFFWriter(buf []byte) *FFWriter {
	return &FFWriter{buf: buf}
}

// Pos returns the number of whole bytes committed to buf so far.
func (w *FFWriter) Pos() int { return w.pos }

// Write packs the low k bits of v into the stream. k may be 0..64; k==0 is a
// no-op.
func (w *FFWriter) Write(v uint64, k uint) error {
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

		bits := v & mask(chunk)
		if err := w.writeChunk(bits, chunk); err != nil {
			return err
		}

		v >>= chunk
		k -= chunk
	}

	return nil
}

func (w *FFWriter) writeChunk(v uint64, k uint) error {
	w.acc |= v << w.nb
	w.nb += k

	for w.nb >= 8 {
		if w.pos >= len(w.buf) {
			return fmt.Errorf("no room for byte %d: %w", w.pos, errs.ErrBufferTooSmall)
		}

		w.buf[w.pos] = byte(w.acc)
		w.acc >>= 8
		w.nb -= 8
		w.pos++
	}

	return nil
}

// Finish flushes any partial byte still held in the accumulator and returns
// the total number of bytes written. It is safe to call Finish without any
// pending bits; the call is then a no-op that just reports Pos().
func (w *FFWriter) Finish() (int, error) {
	if w.nb > 0 {
		if w.pos >= len(w.buf) {
			return w.pos, fmt.Errorf("no room for final byte: %w", errs.ErrBufferTooSmall)
		}

		w.buf[w.pos] = byte(w.acc)
		w.pos++
		w.acc = 0
		w.nb = 0
	}

	return w.pos, nil
}

// FFReader consumes variable-width bit fields from buf in the same order an
// FFWriter produced them.
type FFReader struct {
	buf []byte
	pos int
	acc uint64
	nb  uint
}

// NewFFReader creates a reader over buf starting at offset 0.
func NewFFReader(buf []byte) *FFReader {
	return &FFReader{buf: buf}
}

// Pos returns the number of whole bytes consumed from buf so far.
func (r *FFReader) Pos() int { return r.pos }

// Read extracts the next k bits of the stream, least-significant bit first.
// k may be 0..64; k==0 always returns 0.
func (r *FFReader) Read(k uint) (uint64, error) {
	if k == 0 {
		return 0, nil
	}
	if k > 64 {
		return 0, fmt.Errorf("bit width %d exceeds 64: %w", k, errs.ErrInvalidParameter)
	}

	var result uint64
	var got uint

	for got < k {
		if r.nb == 0 {
			if r.pos >= len(r.buf) {
				return 0, fmt.Errorf("stream exhausted at byte %d: %w", r.pos, errs.ErrBufferTooSmall)
			}

			r.acc = uint64(r.buf[r.pos])
			r.pos++
			r.nb = 8
		}

		take := k - got
		if take > r.nb {
			take = r.nb
		}

		result |= (r.acc & mask(take)) << got
		r.acc >>= take
		r.nb -= take
		got += take
	}

	return result, nil
}

func mask(k uint) uint64 {
	if k >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << k) - 1
}
