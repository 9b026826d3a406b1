// Package gcdscan computes the greatest common divisor of an array of
// fixed-width unsigned integers using a multiplicative-inverse divisibility
// test, falling back to binary GCD only when that fast test fails.
package gcdscan

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/flowcodec/numcodec/errs"
)

// divTest holds the precomputed (inverse, shift) pair that lets Divisible
// check "is x a multiple of d" without a division.
type divTest struct {
	d     uint64
	inv   uint64
	shift uint
	mask  uint64
}

// newDivTest derives the fast divisibility test for d over elements of the
// given byte width: shift = ctz(d), d' = d>>shift, inv = modular inverse of
// d' mod 2^(8*width) (computed only when d' is odd; d'==1 needs no inverse).
func newDivTest(d uint64, width int) divTest {
	shift := uint(bits.TrailingZeros64(d))
	dPrime := d >> shift

	var inv uint64
	if dPrime == 1 {
		inv = 1
	} else {
		inv = modInverse(dPrime, width)
	}

	return divTest{d: d, inv: inv, shift: shift, mask: widthMask(width)}
}

// modInverse returns v such that d*v ≡ 1 (mod 2^(8*width)), via Newton's
// iteration for inverting an odd number modulo a power of two.
func modInverse(d uint64, width int) uint64 {
	bitsWide := uint(8 * width)
	modulus := uint64(1) << (bitsWide % 64)
	if bitsWide == 64 {
		modulus = 0 // full range wraps naturally in uint64 arithmetic
	}

	// Newton's method for the inverse mod 2^n: doubles correct bits each
	// iteration starting from the trivially-correct 3-bit seed d itself
	// (valid because d is odd).
	inv := d
	for i := 0; i < 6; i++ {
		inv = inv * (2 - d*inv)
	}

	if modulus != 0 {
		inv &= modulus - 1
	}

	return inv
}

// divisible reports whether x is an exact multiple of t.d, using the
// multiplicative-inverse test with an overflow guard on the recovered
// quotient.
func (t divTest) divisible(x uint64) bool {
	if x == 0 {
		return true
	}
	if t.d == 0 {
		return false
	}

	q := (x * t.inv) >> t.shift
	q &= t.mask >> t.shift

	if q > t.mask/t.d {
		return false
	}

	return q*t.d == x
}

func widthMask(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}

	return (uint64(1) << (8 * width)) - 1
}

// binaryGCD computes GCD(a, b) using Stein's algorithm: factor out common
// powers of two, then repeatedly subtract the smaller from the larger,
// shifting out factors of two from the difference each time.
func binaryGCD(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}

	shift := uint(bits.TrailingZeros64(a | b))
	a >>= bits.TrailingZeros64(a)

	for b != 0 {
		b >>= bits.TrailingZeros64(b)
		if a > b {
			a, b = b, a
		}
		b -= a
	}

	return a << shift
}

// loadElement reads one little-endian width-byte element at index i from src.
func loadElement(src []byte, i, width int) uint64 {
	off := i * width
	switch width {
	case 1:
		return uint64(src[off])
	case 2:
		return uint64(binary.LittleEndian.Uint16(src[off:]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(src[off:]))
	default:
		return binary.LittleEndian.Uint64(src[off:])
	}
}

func validateWidth(w int) error {
	switch w {
	case 1, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("element width %d not in {1,2,4,8}: %w", w, errs.ErrInvalidParameter)
	}
}

// GCD returns the greatest common divisor of a and b (0 is the identity:
// GCD(0,0)=0, GCD(0,b)=b).
func GCD(a, b uint64) uint64 {
	return binaryGCD(a, b)
}

// GcdVec scans n little-endian width-byte unsigned integers in src and
// returns their greatest common divisor. An all-zero array returns 1, per
// the convention that GCD of no constraint is the multiplicative identity.
func GcdVec(src []byte, n int, width int) (uint64, error) {
	if err := validateWidth(width); err != nil {
		return 0, err
	}
	if n < 0 || len(src) < n*width {
		return 0, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), n*width, errs.ErrBufferTooSmall)
	}
	if n == 0 {
		return 1, nil
	}

	i := 0
	for i < n && loadElement(src, i, width) == 0 {
		i++
	}
	if i == n {
		return 1, nil
	}

	g := loadElement(src, i, width)
	i++

	test := newDivTest(g, width)
	for ; i < n; i++ {
		x := loadElement(src, i, width)
		if x == 0 {
			continue
		}
		if test.divisible(x) {
			continue
		}

		g = binaryGCD(x, g)
		if g == 1 {
			return 1, nil
		}
		test = newDivTest(g, width)
	}

	return g, nil
}
