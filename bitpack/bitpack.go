package bitpack

import (
	"fmt"

	"github.com/flowcodec/numcodec/bytepack"
	"github.com/flowcodec/numcodec/errs"
	"github.com/flowcodec/numcodec/internal/options"
)

// config carries the dispatch-mode override passed through WithForceScalar.
type config struct {
	forceScalar bool
}

// Opt configures a single Encode or Decode call.
type Opt = options.Option[*config]

// WithForceScalar disables the CPU-feature-gated batch path for a call,
// routing the generic case through scalarPack/scalarUnpack directly. This
// exists so tests (and callers chasing a reproducibility bug) can pin the
// reference behavior regardless of what the host CPU supports.
func WithForceScalar() Opt {
	return options.NoError[*config](func(c *config) { c.forceScalar = true })
}

func applyOpts(opts []Opt) (*config, error) {
	c := &config{}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// EncodeBound returns the exact packed size, in bytes, for n elements
// packed at k bits each: ceil(n*k/8).
func EncodeBound(n int, k uint) int {
	if n <= 0 || k == 0 {
		return 0
	}

	return int((uint64(n)*uint64(k) + 7) / 8)
}

func validateParams(w int, k uint) error {
	switch w {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("element width %d not in {1,2,4,8}: %w", w, errs.ErrInvalidParameter)
	}

	if k > uint(8*w) {
		return fmt.Errorf("bit width %d exceeds %d for width-%d elements: %w", k, 8*w, w, errs.ErrInvalidParameter)
	}

	return nil
}

// Verify reports whether every one of the n little-endian, w-byte elements
// in src fits within k bits. Callers with untrusted data must call Verify
// before Encode, since Encode silently truncates out-of-range elements to
// their low k bits.
func Verify(src []byte, n int, w int, k uint) (bool, error) {
	if err := validateParams(w, k); err != nil {
		return false, err
	}
	if n == 0 {
		return true, nil
	}

	need := n * w
	if len(src) < need {
		return false, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), need, errs.ErrBufferTooSmall)
	}

	return verifyScalar(src, n, w, k), nil
}

// Encode packs the n little-endian, w-byte elements in src using k bits
// each, writing the result to dst and returning the number of bytes
// written. dst must have capacity at least EncodeBound(n, k).
func Encode(dst []byte, src []byte, n int, w int, k uint, opts ...Opt) (int, error) {
	if err := validateParams(w, k); err != nil {
		return 0, err
	}
	cfg, err := applyOpts(opts)
	if err != nil {
		return 0, err
	}

	if n == 0 || k == 0 {
		return 0, nil
	}

	need := n * w
	if len(src) < need {
		return 0, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), need, errs.ErrBufferTooSmall)
	}

	bound := EncodeBound(n, k)
	if len(dst) < bound {
		return 0, fmt.Errorf("destination holds %d bytes, need %d: %w", len(dst), bound, errs.ErrBufferTooSmall)
	}

	if k == uint(8*w) {
		copy(dst[:need], src[:need])
		return need, nil
	}

	if k%8 == 0 {
		return bytepack.Encode(dst, src, n, w, int(k/8))
	}

	if k == 1 && n <= 64 {
		return pack1Bit(dst, src, n, w)
	}

	if cfg.forceScalar {
		return scalarPack(dst, src, n, w, k)
	}

	return doPack(dst, src, n, w, k)
}

// Decode unpacks n elements of k bits each from src into dst as
// little-endian, w-byte elements, returning the number of bytes consumed
// from src.
func Decode(dst []byte, n int, w int, src []byte, k uint, opts ...Opt) (int, error) {
	if err := validateParams(w, k); err != nil {
		return 0, err
	}
	cfg, err := applyOpts(opts)
	if err != nil {
		return 0, err
	}

	need := n * w
	if len(dst) < need {
		return 0, fmt.Errorf("destination holds %d bytes, need %d: %w", len(dst), need, errs.ErrBufferTooSmall)
	}

	if n == 0 {
		return 0, nil
	}

	if k == 0 {
		for i := range dst[:need] {
			dst[i] = 0
		}

		return 0, nil
	}

	bound := EncodeBound(n, k)
	if len(src) < bound {
		return 0, fmt.Errorf("source holds %d bytes, need %d: %w", len(src), bound, errs.ErrBufferTooSmall)
	}

	if k == uint(8*w) {
		copy(dst[:need], src[:need])
		return need, nil
	}

	if k%8 == 0 {
		return bytepack.Decode(dst, n, w, src, int(k/8))
	}

	if k == 1 && n <= 64 {
		return unpack1Bit(dst, n, w, src)
	}

	if cfg.forceScalar {
		return scalarUnpack(dst, n, w, src, k)
	}

	return doUnpack(dst, n, w, src, k)
}
