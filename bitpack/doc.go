// Package bitpack packs arrays of fixed-width unsigned integers into a
// dense bit stream using exactly K bits per element, and unpacks them back.
//
// Elements are little-endian, W bytes wide, W ∈ {1,2,4,8}. K ranges from 0
// (all elements are zero, nothing is written) to 8*W (the identity case, a
// plain little-endian copy). Packing is bit-exact and reversible: the j'th
// bit of the packed stream is bit (j mod K) of element (j div K).
//
// # Dispatch
//
// Encode and Decode route through a small dispatch table keyed on (W, K):
//
//   - K == 0: nothing to write / destination zero-filled.
//   - K == 8*W: identity, handled as a memcpy.
//   - K % 8 == 0, 0 < K < 8*W: delegated to bytepack, no bit shifting needed.
//   - K == 1, n <= 64: a dedicated one-bit-per-element packer that works
//     entirely out of a single u64 register.
//   - anything else: the generic scalar kernel, built on bitstream's
//     forward-filled writer/reader.
//
// A CPU-feature-gated batch variant of the generic kernel is selected at
// package init time (see dispatch.go) the same way SIMD/scalar dispatch is
// wired elsewhere in this ecosystem; it is required to produce output
// identical to the scalar kernel, which remains the authoritative
// reference and is what TestScalarAndBatchAgree checks the batch path
// against.
package bitpack
