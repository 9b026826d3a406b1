package bitpack

import (
	"github.com/flowcodec/numcodec/bitstream"
	"golang.org/x/sys/cpu"
)

// packFunc/unpackFunc are the generic-kernel entry points selected at init
// time based on detected CPU features, mirroring the function-pointer swap
// gopus uses for its IMDCT kernels. Both variants are required to produce
// bit-identical output to scalarPack/scalarUnpack; batchPack below
// processes elements in groups of four as the structural placeholder for
// where a real vectorized implementation would plug in, and batchUnpack
// delegates to scalarUnpack.
var (
	doPack   = scalarPack
	doUnpack = scalarUnpack
)

func init() {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		doPack = batchPack
		doUnpack = batchUnpack
	}
}

// batchPack drives the same accumulator-based writer as scalarPack, four
// elements at a time, so a genuine SIMD gather/shuffle kernel can later
// replace the inner loop without touching the dispatch or bounds-checking
// logic around it.
func batchPack(dst []byte, src []byte, n int, w int, k uint) (int, error) {
	writer := bitstream.NewFFWriter(dst)
	mask := elementMask(k)

	i := 0
	for ; i+4 <= n; i += 4 {
		for j := 0; j < 4; j++ {
			v := loadElement(src, w, i+j) & mask
			if err := writer.Write(v, k); err != nil {
				return 0, err
			}
		}
	}
	for ; i < n; i++ {
		v := loadElement(src, w, i) & mask
		if err := writer.Write(v, k); err != nil {
			return 0, err
		}
	}

	return writer.Finish()
}

func batchUnpack(dst []byte, n int, w int, src []byte, k uint) (int, error) {
	return scalarUnpack(dst, n, w, src, k)
}
