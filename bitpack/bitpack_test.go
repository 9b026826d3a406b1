package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_WorkedExample(t *testing.T) {
	src := []byte{0, 1, 2, 3, 4, 5, 6, 7} // u8 elements
	n, w, k := 8, 1, uint(3)

	bound := EncodeBound(n, k)
	require.Equal(t, 3, bound)

	dst := make([]byte, bound)
	written, err := Encode(dst, src, n, w, k)
	require.NoError(t, err)
	require.Equal(t, 3, written)
	require.Equal(t, []byte{0x88, 0xC6, 0xFA}, dst)

	back := make([]byte, n*w)
	consumed, err := Decode(back, n, w, dst, k)
	require.NoError(t, err)
	require.Equal(t, 3, consumed)
	require.Equal(t, src, back)
}

func TestEncode_KZeroProducesNothing(t *testing.T) {
	src := make([]byte, 4*4)
	dst := make([]byte, 0)
	n, err := Encode(dst, src, 4, 4, 0)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestDecode_KZeroZeroFills(t *testing.T) {
	dst := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n, err := Decode(dst, 2, 4, nil, 0)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, make([]byte, 8), dst)
}

func TestEncode_NZeroProducesNothing(t *testing.T) {
	n, err := Encode(nil, nil, 0, 4, 5)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestEncode_IdentityIsMemcpy(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)
	n, err := Encode(dst, src, 2, 4, 32)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, src, dst)
}

func TestEncode_InvalidWidth(t *testing.T) {
	_, err := Encode(nil, nil, 1, 3, 1)
	require.Error(t, err)
}

func TestEncode_KExceedsWidth(t *testing.T) {
	_, err := Encode(nil, nil, 1, 1, 9)
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	src := []byte{0b0000_0111, 0b0000_1000}
	ok, err := Verify(src, 2, 1, 3)
	require.NoError(t, err)
	require.False(t, ok, "second element has a bit set above position K-1")

	ok, err = Verify(src[:1], 1, 1, 3)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOneBitSpecialCase(t *testing.T) {
	n := 37
	src := make([]byte, n)
	for i := range src {
		if i%3 == 0 {
			src[i] = 1
		}
	}

	dst := make([]byte, EncodeBound(n, 1))
	written, err := Encode(dst, src, n, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 5, written)

	back := make([]byte, n)
	_, err = Decode(back, n, 1, dst, 1)
	require.NoError(t, err)
	require.Equal(t, src, back)
}

func TestRoundTrip_AllWidthsAndBitWidths(t *testing.T) {
	widths := []int{1, 2, 4, 8}
	rng := rand.New(rand.NewSource(1))

	for _, w := range widths {
		for k := uint(0); k <= uint(8*w); k++ {
			n := 25
			src := make([]byte, n*w)
			mask := elementMask(k)
			for i := 0; i < n; i++ {
				v := rng.Uint64() & mask
				storeElement(src, w, i, v)
			}

			dst := make([]byte, EncodeBound(n, k))
			written, err := Encode(dst, src, n, w, k)
			require.NoError(t, err)
			require.Equal(t, EncodeBound(n, k), written)

			back := make([]byte, n*w)
			_, err = Decode(back, n, w, dst, k)
			require.NoError(t, err)
			require.Equal(t, src, back, "w=%d k=%d", w, k)
		}
	}
}

func TestScalarAndBatchAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n, w, k := 200, 4, uint(13)
	src := make([]byte, n*w)
	mask := elementMask(k)
	for i := 0; i < n; i++ {
		storeElement(src, w, i, rng.Uint64()&mask)
	}

	scalarDst := make([]byte, EncodeBound(n, k))
	_, err := Encode(scalarDst, src, n, w, k, WithForceScalar())
	require.NoError(t, err)

	batchDst := make([]byte, EncodeBound(n, k))
	_, err = Encode(batchDst, src, n, w, k)
	require.NoError(t, err)

	require.Equal(t, scalarDst, batchDst)
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint8(4), uint(13), int64(7))
	f.Fuzz(func(t *testing.T, wSeed uint8, k uint, seed int64) {
		widths := []int{1, 2, 4, 8}
		w := widths[int(wSeed)%len(widths)]
		if k > uint(8*w) {
			t.Skip()
		}

		n := 17
		rng := rand.New(rand.NewSource(seed))
		src := make([]byte, n*w)
		mask := elementMask(k)
		for i := 0; i < n; i++ {
			storeElement(src, w, i, rng.Uint64()&mask)
		}

		dst := make([]byte, EncodeBound(n, k))
		_, err := Encode(dst, src, n, w, k)
		require.NoError(t, err)

		back := make([]byte, n*w)
		_, err = Decode(back, n, w, dst, k)
		require.NoError(t, err)
		require.Equal(t, src, back)
	})
}
