package archive

import (
	"fmt"
	"os"

	"github.com/jovermann/pvview/internal/pool"
)

// scratchPool backs every codec's Compress/Decompress scratch buffer, sized
// for a whole rotated daily file: it keeps buffers of up to 32MiB for reuse,
// a higher ceiling than the tail-read and whole-file pools package cache
// and logfile.Reader borrow from (pool.GetTailBuffer/GetFileBuffer).
var scratchPool = pool.NewByteBufferPool(256*1024, 32*1024*1024)

// CompressionType identifies one of the archival compression algorithms
// this package implements.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

// String renders the algorithm name used in file suffixes and log messages.
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
		return "unknown"
	}
}

// Compressor compresses a complete log file payload for archival storage.
type Compressor interface {
	// Compress compresses data and returns the compressed result. The input
	// is not modified; the compressing codecs return a newly allocated
	// slice, while NoOpCompressor returns data itself.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's output.
type Decompressor interface {
	// Decompress decompresses data and returns the original payload.
	// Returns an error if data is corrupted or was not produced by the
	// matching Compressor.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarizes one archival compression run, reported by
// the `archive` CLI verb.
type CompressionStats struct {
	Algorithm           CompressionType
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns CompressedSize / OriginalSize; values below 1.0
// indicate the archive is smaller than the source file.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage of the original size.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// builtinCodecs holds one instance of each algorithm this package ships.
var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCompressor(),
	CompressionZstd: NewZstdCompressor(),
	CompressionS2:   NewS2Compressor(),
	CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the given algorithm.
func GetCodec(t CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("archive: unsupported compression type: %s", t)
}

// archivedSuffixOrder lists the codecs FindArchivedSibling probes for,
// preferring the default archival codec (`pvview archive`'s own default)
// first.
var archivedSuffixOrder = []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4}

// FindArchivedSibling looks for path+"."+codec next to path, for each
// codec this package supports, and reports the first one found on disk
// plus the CompressionType needed to decompress it. Package cache calls
// this when a path it is asked to load is missing, so cache.Load can still
// read a day an operator has since archived with the `archive` CLI verb.
func FindArchivedSibling(path string) (archivedPath string, codecType CompressionType, ok bool) {
	for _, t := range archivedSuffixOrder {
		candidate := path + "." + t.String()
		if _, err := os.Stat(candidate); err == nil {
			return candidate, t, true
		}
	}
	return "", CompressionNone, false
}

// ParseCompressionType maps a file-suffix or config string ("none", "zstd",
// "s2", "lz4") to a CompressionType. It is the inverse of String and is
// used when the `archive` CLI verb or engine config names an algorithm.
func ParseCompressionType(name string) (CompressionType, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("archive: unknown compression type %q", name)
	}
}
