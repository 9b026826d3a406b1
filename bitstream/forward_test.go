package bitstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFFWriterReader_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	const k = 3

	buf := make([]byte, 3)
	w := NewFFWriter(buf)
	for _, v := range values {
		require.NoError(t, w.Write(v, k))
	}
	n, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0x88, 0xC6, 0xFA}, buf)

	r := NewFFReader(buf)
	for _, want := range values {
		got, err := r.Read(k)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFFWriterReader_WideFields(t *testing.T) {
	values := []uint64{0x1, 0xDEADBEEFCAFEBABE, 0, ^uint64(0)}
	const k = 64

	buf := make([]byte, 8*len(values))
	w := NewFFWriter(buf)
	for _, v := range values {
		require.NoError(t, w.Write(v, k))
	}
	_, err := w.Finish()
	require.NoError(t, err)

	r := NewFFReader(buf)
	for _, want := range values {
		got, err := r.Read(k)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestFFWriter_ZeroWidthIsNoop(t *testing.T) {
	buf := make([]byte, 1)
	w := NewFFWriter(buf)
	require.NoError(t, w.Write(0xFF, 0))
	n, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestFFWriter_BufferTooSmall(t *testing.T) {
	buf := make([]byte, 1)
	w := NewFFWriter(buf)
	require.NoError(t, w.Write(0b1111_1111, 8))
	require.Error(t, w.Write(1, 8))
}

func TestFFReader_StreamExhausted(t *testing.T) {
	buf := []byte{0xFF}
	r := NewFFReader(buf)
	_, err := r.Read(8)
	require.NoError(t, err)
	_, err = r.Read(1)
	require.Error(t, err)
}

func TestFFWriter_InvalidWidth(t *testing.T) {
	buf := make([]byte, 16)
	w := NewFFWriter(buf)
	require.Error(t, w.Write(0, 65))
}

func FuzzFFRoundTrip(f *testing.F) {
	f.Add(uint64(12345), uint(13), uint8(10))
	f.Fuzz(func(t *testing.T, v uint64, k uint, count uint8) {
		if k == 0 || k > 57 || count == 0 {
			t.Skip()
		}
		n := int(count%32) + 1
		masked := v & mask(k)

		buf := make([]byte, (uint(n)*k+7)/8+8)
		w := NewFFWriter(buf)
		for i := 0; i < n; i++ {
			require.NoError(t, w.Write(masked, k))
		}
		_, err := w.Finish()
		require.NoError(t, err)

		r := NewFFReader(buf)
		for i := 0; i < n; i++ {
			got, err := r.Read(k)
			require.NoError(t, err)
			require.Equal(t, masked, got)
		}
	})
}
