package archive

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders; klauspost/compress/zstd is explicitly
// designed for decoder reuse and allocates nothing after warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("archive: failed to create zstd decoder: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPool pools zstd encoders for the same reason.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("archive: failed to create zstd encoder: %v", err))
		}
		return encoder
	},
}

// Compress compresses data with Zstandard. The encoder is pooled; the
// destination scratch buffer is borrowed from scratchPool so repeated
// archival runs over same-sized daily files do not reallocate their
// output buffer on every call, only resize once it settles at a
// steady-state capacity.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	bb := scratchPool.Get()
	defer scratchPool.Put(bb)

	encoded := encoder.EncodeAll(data, bb.Bytes()[:0])
	out := make([]byte, len(encoded))
	copy(out, encoded)
	bb.B = encoded[:0]
	return out, nil
}

// Decompress decompresses Zstd-compressed data using a pooled decoder and
// a pooled scratch buffer for the same reason Compress borrows one.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	bb := scratchPool.Get()
	defer scratchPool.Put(bb)

	decoded, err := decoder.DecodeAll(data, bb.Bytes()[:0])
	if err != nil {
		return nil, fmt.Errorf("archive: zstd decompression failed: %w", err)
	}
	out := make([]byte, len(decoded))
	copy(out, decoded)
	bb.B = decoded[:0]
	return out, nil
}
