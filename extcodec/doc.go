// Package extcodec provides general-purpose compression codecs for use
// downstream of this module's bit-level codecs.
//
// # Overview
//
// The core codecs (bitpack, bytepack, delta, flatpack, mergesorted,
// gcdscan) squeeze redundancy out of numeric arrays using domain-specific
// transforms. A pipeline composing them may still benefit from a final
// general-purpose compression pass over the packed bytes; extcodec is the
// boundary interface for that pass, not a new codec in its own right.
//
// Four backends are provided:
//   - None: returns input unchanged
//   - Zstd: best ratio, moderate speed
//   - S2: balanced speed/ratio (Snappy-compatible)
//   - LZ4: fastest decompression
//
// No package under this module's core imports extcodec; its only callers in
// this repository are its own tests.
package extcodec
