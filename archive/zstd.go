package archive

// ZstdCompressor archives a log file with Zstandard, the default
// algorithm for the `archive` CLI verb because it gets the best ratio on
// the repetitive timestamp/value byte patterns a rotated log file carries.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
