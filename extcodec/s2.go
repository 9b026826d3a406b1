package extcodec

import "github.com/klauspost/compress/s2"

// S2Codec wraps klauspost/compress's S2 format: a Snappy-compatible
// algorithm tuned for speed over ratio, a good fit for a pipeline stage
// downstream of this module's codecs where most of the entropy has already
// been squeezed out by bit-packing.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 codec with default settings.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
