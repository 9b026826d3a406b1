package bytepack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	// four u32 elements, low 2 bytes of each kept (nbytes=2, w=4)
	src := []byte{
		0x01, 0x02, 0x03, 0x04,
		0xAA, 0xBB, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF,
	}
	n, w, nbytes := 4, 4, 2

	dst := make([]byte, Bound(n, nbytes))
	written, err := Encode(dst, src, n, w, nbytes)
	require.NoError(t, err)
	require.Equal(t, 8, written)
	require.Equal(t, []byte{0x01, 0x02, 0xAA, 0xBB, 0x00, 0x00, 0xFF, 0xFF}, dst)

	back := make([]byte, n*w)
	consumed, err := Decode(back, n, w, dst, nbytes)
	require.NoError(t, err)
	require.Equal(t, 8, consumed)
	require.Equal(t, []byte{
		0x01, 0x02, 0x00, 0x00,
		0xAA, 0xBB, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0x00, 0x00,
	}, back)
}

func TestEncode_BufferTooSmall(t *testing.T) {
	src := make([]byte, 4)
	dst := make([]byte, 1)
	_, err := Encode(dst, src, 1, 4, 2)
	require.Error(t, err)
}

func TestEncode_InvalidByteWidth(t *testing.T) {
	src := make([]byte, 4)
	dst := make([]byte, 8)
	_, err := Encode(dst, src, 1, 4, 5)
	require.Error(t, err)
}
