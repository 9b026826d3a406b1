// Package bitstream implements the variable-width bit field primitives shared
// by the codecs in this module.
//
// Two writer/reader pairs are provided, distinguished by packing direction:
//
//   - Forward-filled (FF): the natural little-endian layout. Bytes are
//     committed from the front of the buffer toward the back as the
//     accumulator fills. This is what BitPack and FlatPack use.
//   - Back-filled (BF): bytes are committed from the back of the buffer
//     toward the front, and a "10...0" sentinel is written last, so it lands
//     at the lowest address and marks where the data begins once the stream
//     is read forwards. Nothing in this core
//     currently emits a BF stream directly, but the primitive is exercised
//     by its own tests since higher-level codecs outside this module's
//     scope are written against it.
//
// Buffers are always caller-owned and borrowed for the duration of a single
// writer or reader's lifetime; nothing here retains a reference afterward.
package bitstream
