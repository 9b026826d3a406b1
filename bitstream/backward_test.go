package bitstream

import (
	"testing"

	"github.com/flowcodec/numcodec/errs"
	"github.com/stretchr/testify/require"
)

func TestBFWriterReader_ReversesOrder(t *testing.T) {
	buf := make([]byte, 2)
	w := NewBFWriter(buf)
	require.NoError(t, w.Write(10, 4)) // A
	require.NoError(t, w.Write(5, 4))  // B
	n, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{0x80, 0xA5}, buf)

	r, err := NewBFReader(buf)
	require.NoError(t, err)

	first, err := r.Read(4)
	require.NoError(t, err)
	require.Equal(t, uint64(5), first, "BF read order is the reverse of write order")

	second, err := r.Read(4)
	require.NoError(t, err)
	require.Equal(t, uint64(10), second)
}

func TestBFWriterReader_SingleValueMergesSentinel(t *testing.T) {
	buf := make([]byte, 1)
	w := NewBFWriter(buf)
	require.NoError(t, w.Write(10, 4))
	n, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0xA8}, buf)

	r, err := NewBFReader(buf)
	require.NoError(t, err)
	v, err := r.Read(4)
	require.NoError(t, err)
	require.Equal(t, uint64(10), v)
}

func TestBFReader_MissingSentinelIsCorruption(t *testing.T) {
	buf := []byte{0x00, 0xA5}
	_, err := NewBFReader(buf)
	require.ErrorIs(t, err, errs.ErrCorruption)
}

func TestBFReader_EmptyBufferIsCorruption(t *testing.T) {
	_, err := NewBFReader(nil)
	require.Error(t, err)
}

func TestBFWriter_BufferTooSmall(t *testing.T) {
	buf := make([]byte, 0)
	w := NewBFWriter(buf)
	_, err := w.Finish()
	require.Error(t, err)
}

func FuzzBFRoundTrip(f *testing.F) {
	f.Add(uint64(12345), uint(13), uint8(6))
	f.Fuzz(func(t *testing.T, v uint64, k uint, count uint8) {
		if k == 0 || k > 57 || count == 0 {
			t.Skip()
		}
		n := int(count%32) + 1
		masked := v & mask(k)

		values := make([]uint64, n)
		buf := make([]byte, (uint(n)*k+7)/8+8)
		w := NewBFWriter(buf)
		for i := 0; i < n; i++ {
			values[i] = masked
			require.NoError(t, w.Write(masked, k))
		}
		written, err := w.Finish()
		require.NoError(t, err)

		r, err := NewBFReader(buf[len(buf)-written:])
		require.NoError(t, err)
		for i := n - 1; i >= 0; i-- {
			got, err := r.Read(k)
			require.NoError(t, err)
			require.Equal(t, values[i], got)
		}
	})
}
