package gcdscan

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func u32leBytes(vals []uint32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}

	return out
}

func TestGcdVec_WorkedExample(t *testing.T) {
	src := u32leBytes([]uint32{12, 18, 30, 0, 24})
	g, err := GcdVec(src, 5, 4)
	require.NoError(t, err)
	require.EqualValues(t, 6, g)
}

func TestGcdVec_AllZeros(t *testing.T) {
	src := u32leBytes([]uint32{0, 0, 0})
	g, err := GcdVec(src, 3, 4)
	require.NoError(t, err)
	require.EqualValues(t, 1, g)
}

func TestGcdVec_SingleElement(t *testing.T) {
	src := u32leBytes([]uint32{7})
	g, err := GcdVec(src, 1, 4)
	require.NoError(t, err)
	require.EqualValues(t, 7, g)
}

func TestGcdVec_EmptyArray(t *testing.T) {
	g, err := GcdVec(nil, 0, 4)
	require.NoError(t, err)
	require.EqualValues(t, 1, g)
}

func TestGcdVec_InvalidWidth(t *testing.T) {
	_, err := GcdVec(make([]byte, 3), 1, 3)
	require.Error(t, err)
}

func TestGcdVec_BufferTooSmall(t *testing.T) {
	_, err := GcdVec(make([]byte, 2), 1, 4)
	require.Error(t, err)
}

func TestGcdVec_AllWidths(t *testing.T) {
	for _, w := range []int{1, 2, 4, 8} {
		vals := []uint32{8, 16, 24}
		buf := make([]byte, len(vals)*w)
		for i, v := range vals {
			switch w {
			case 1:
				buf[i] = byte(v)
			case 2:
				binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
			case 4:
				binary.LittleEndian.PutUint32(buf[i*4:], v)
			case 8:
				binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
			}
		}

		g, err := GcdVec(buf, len(vals), w)
		require.NoError(t, err)
		require.EqualValues(t, 8, g)
	}
}

func TestGcdVec_Width8NonDivisible(t *testing.T) {
	// Regression for the multiplicative-inverse overflow guard: at W=8 the
	// modular equality q*d==x holds unconditionally for odd d unless the
	// quotient-bound check rejects out-of-range candidates first.
	buf := make([]byte, 2*8)
	binary.LittleEndian.PutUint64(buf[0:], 3)
	binary.LittleEndian.PutUint64(buf[8:], 5)
	g, err := GcdVec(buf, 2, 8)
	require.NoError(t, err)
	require.EqualValues(t, 1, g)

	buf2 := make([]byte, 2*8)
	binary.LittleEndian.PutUint64(buf2[0:], 6)
	binary.LittleEndian.PutUint64(buf2[8:], 10)
	g2, err := GcdVec(buf2, 2, 8)
	require.NoError(t, err)
	require.EqualValues(t, 2, g2)
}

func TestGCD_Basic(t *testing.T) {
	require.EqualValues(t, 6, GCD(12, 18))
	require.EqualValues(t, 7, GCD(0, 7))
	require.EqualValues(t, 7, GCD(7, 0))
	require.EqualValues(t, 1, GCD(17, 13))
}

func FuzzGcdVec_DivisibilityProperty(f *testing.F) {
	f.Add(uint32(4), uint32(8), uint32(12))
	f.Fuzz(func(t *testing.T, a, b, c uint32) {
		d := GCD(uint64(a), GCD(uint64(b), uint64(c)))
		if d == 0 {
			return
		}

		src := u32leBytes([]uint32{a, b, c})
		g, err := GcdVec(src, 3, 4)
		require.NoError(t, err)

		if a != 0 {
			require.Zero(t, uint64(a)%g)
		}
		if b != 0 {
			require.Zero(t, uint64(b)%g)
		}
		if c != 0 {
			require.Zero(t, uint64(c)%g)
		}
	})
}
