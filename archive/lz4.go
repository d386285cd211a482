package archive

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the type keeps an
// internal hash table worth reusing across archival runs.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor archives a log file with LZ4, prioritizing fast
// decompression over compression ratio.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data with LZ4, using a pooled block compressor and
// a scratchPool-borrowed destination buffer sized by CompressBlockBound.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := scratchPool.Get()
	defer scratchPool.Put(bb)
	bb.Grow(lz4.CompressBlockBound(len(data)))
	bb.SetLength(cap(bb.B))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, bb.Bytes())
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, bb.Bytes()[:n])
	bb.SetLength(n)
	return out, nil
}

// Decompress decompresses LZ4-compressed data into one scratchPool-borrowed
// buffer, doubling the attempted size until the payload fits; each attempt
// that exceeds the buffer's capacity makes ByteBuffer.Grow replace its
// backing array with a larger one.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := scratchPool.Get()
	defer scratchPool.Put(bb)

	const maxSize = 128 * 1024 * 1024
	bufSize := len(data) * 4
	if bufSize == 0 {
		bufSize = 64
	}

	for bufSize <= maxSize {
		bb.SetLength(0)
		bb.Grow(bufSize)
		bb.SetLength(bufSize)

		n, err := lz4.UncompressBlock(data, bb.Bytes())
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}
			return nil, err
		}
		out := make([]byte, n)
		copy(out, bb.Bytes()[:n])
		bb.SetLength(n)
		return out, nil
	}
	return nil, lz4.ErrInvalidSourceShortBuffer
}
