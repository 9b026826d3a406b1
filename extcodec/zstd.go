package extcodec

// ZstdCodec wraps klauspost/compress/zstd, chosen downstream of this
// module's codecs when compression ratio matters more than speed (cold
// storage, network transmission of bit-packed columns).
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
