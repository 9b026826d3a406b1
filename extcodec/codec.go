// Package extcodec gives the "entropy coders and compression backends are
// external collaborators" boundary from the core codecs a concrete Go
// interface. No C1-C7 package imports this one; it exists for callers
// composing this module's codecs with a general-purpose compressor.
package extcodec

import "fmt"

// CompressionType identifies one of the built-in compression backends.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("CompressionType(%d)", int(t))
	}
}

// Compressor compresses a byte slice, returning newly allocated output. The
// input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions, the boundary interface components
// upstream of this core's codecs are expected to satisfy.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCodec(),
	CompressionZstd: NewZstdCodec(),
	CompressionS2:   NewS2Codec(),
	CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
