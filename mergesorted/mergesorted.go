// Package mergesorted merges up to 64 strictly-ascending uint32 runs into
// one ascending, duplicate-free sequence plus a per-output-value bitset
// recording which runs contributed it.
package mergesorted

import (
	"fmt"

	"github.com/flowcodec/numcodec/endian"
	"github.com/flowcodec/numcodec/errs"
	"github.com/flowcodec/numcodec/internal/pool"
)

var le = endian.GetLittleEndianEngine()

// MaxRuns is the hard cap on the number of runs a single Merge call can
// combine, matching the fixed-capacity heap behind it.
const MaxRuns = 64

// BitsetWidth returns the per-value bitset width, in bytes, for numSrcs
// runs: ceil(numSrcs/8) rounded up to the next power of two in {1,2,4,8}.
func BitsetWidth(numSrcs int) int {
	nb := (numSrcs + 7) / 8
	switch {
	case nb <= 1:
		return 1
	case nb <= 2:
		return 2
	case nb <= 4:
		return 4
	default:
		return 8
	}
}

// Bound returns the maximum number of distinct values Merge can produce
// across the given runs: the sum of their lengths.
func Bound(srcs [][]uint32) int {
	total := 0
	for _, s := range srcs {
		total += len(s)
	}

	return total
}

// CountRuns scans a single ascending-ish array and reports how many maximal
// strictly-ascending runs it contains. This is the selector shim callers use
// to decide, before ever calling Merge, whether a candidate input must be
// routed around the 64-run cap to a fallback path instead.
func CountRuns(data []uint32) int {
	if len(data) == 0 {
		return 0
	}

	runs := 1
	for i := 1; i < len(data); i++ {
		if data[i] <= data[i-1] {
			runs++
		}
	}

	return runs
}

// Merge combines srcs, each a strictly-ascending run with no internal
// duplicates (runs may share values with each other), into mergedOut (the
// distinct values, ascending, 4 bytes little-endian each) and bitsetsOut
// (one BitsetWidth(len(srcs))-byte little-endian bitset per merged value,
// bit i set iff run i contained that value). It returns the number of
// distinct values produced.
func Merge(mergedOut []byte, bitsetsOut []byte, srcs [][]uint32) (int, error) {
	numSrcs := len(srcs)
	if numSrcs > MaxRuns {
		return 0, fmt.Errorf("%d runs exceeds the %d-run cap: %w", numSrcs, MaxRuns, errs.ErrInvalidParameter)
	}
	if numSrcs == 0 {
		return 0, nil
	}

	width := BitsetWidth(numSrcs)
	maxU := Bound(srcs)
	if need := maxU * 4; len(mergedOut) < need {
		return 0, fmt.Errorf("merged buffer holds %d bytes, need up to %d: %w", len(mergedOut), need, errs.ErrBufferTooSmall)
	}
	if need := maxU * width; len(bitsetsOut) < need {
		return 0, fmt.Errorf("bitset buffer holds %d bytes, need up to %d: %w", len(bitsetsOut), need, errs.ErrBufferTooSmall)
	}

	cursors, cleanup := pool.GetUint32Slice(numSrcs)
	defer cleanup()
	for i := range cursors {
		cursors[i] = 0
	}
	inHeap := make(map[uint32]struct{}, numSrcs)
	heap := &pqueue{}

	offer := func(v uint32) {
		if _, ok := inHeap[v]; !ok {
			heap.push(v)
			inHeap[v] = struct{}{}
		}
	}

	for _, run := range srcs {
		if len(run) > 0 {
			offer(run[0])
		}
	}

	u := 0
	for heap.Len() > 0 {
		m := heap.popMin()
		delete(inHeap, m)

		var bitset uint64
		for i, run := range srcs {
			c := int(cursors[i])
			if c < len(run) && run[c] == m {
				bitset |= 1 << uint(i)
				c++
				cursors[i] = uint32(c)
				if c < len(run) {
					offer(run[c])
				}
			}
		}

		le.PutUint32(mergedOut[u*4:], m)
		putBitset(bitsetsOut[u*width:], bitset, width)
		u++
	}

	return u, nil
}

func putBitset(dst []byte, bitset uint64, width int) {
	for i := 0; i < width; i++ {
		dst[i] = byte(bitset >> (8 * i))
	}
}
