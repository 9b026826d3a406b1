package pool

import "sync"

// Scratch pools for the small, bounded allocations the codecs in this
// module are allowed: O(num_srcs) for MergeSorted's per-run cursors, O(256)
// for FlatPack's alphabet bookkeeping. Nothing here grows without bound.
var (
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	flatPackScratchPool = sync.Pool{
		New: func() any { return &FlatPackScratch{} },
	}
)

// GetUint32Slice retrieves and resizes a uint32 slice from the pool.
//
// The returned slice will have the exact length specified by the size
// parameter. If the pooled slice has insufficient capacity, a new slice
// will be allocated. The caller must call the returned cleanup function to
// return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []uint32: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	cursors, cleanup := pool.GetUint32Slice(numSrcs)
//	defer cleanup()
//	// Use cursors slice...
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint32SlicePool.Put(ptr) }
}

// FlatPackScratch holds the two 256-entry tables FlatPack's encoder needs to
// build its alphabet: Present marks which byte values occur in the source,
// SymbolMap maps a byte value to its assigned alphabet index.
type FlatPackScratch struct {
	Present   [256]bool
	SymbolMap [256]byte
}

func (s *FlatPackScratch) reset() {
	s.Present = [256]bool{}
	s.SymbolMap = [256]byte{}
}

// GetFlatPackScratch retrieves a zeroed FlatPackScratch from the pool. The
// caller must call the returned cleanup function to return it.
func GetFlatPackScratch() (*FlatPackScratch, func()) {
	s, _ := flatPackScratchPool.Get().(*FlatPackScratch)

	return s, func() {
		s.reset()
		flatPackScratchPool.Put(s)
	}
}
