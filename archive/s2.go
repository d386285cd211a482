package archive

import "github.com/klauspost/compress/s2"

// S2Compressor archives a log file with S2, a Snappy-compatible codec
// tuned for throughput over ratio.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data with S2 into a scratchPool-borrowed
// destination buffer, so repeated archival runs reuse one growing
// buffer instead of letting s2.Encode allocate a fresh one every call.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := scratchPool.Get()
	defer scratchPool.Put(bb)
	bb.Grow(s2.MaxEncodedLen(len(data)))

	encoded := s2.Encode(bb.Bytes()[:0], data)
	out := make([]byte, len(encoded))
	copy(out, encoded)
	bb.B = encoded[:0]
	return out, nil
}

// Decompress decompresses S2-compressed data, sizing its scratch buffer
// from the block's declared decoded length up front instead of letting
// s2.Decode grow one internally.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := scratchPool.Get()
	defer scratchPool.Put(bb)

	if n, err := s2.DecodedLen(data); err == nil {
		bb.Grow(n)
	}

	decoded, err := s2.Decode(bb.Bytes()[:0], data)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(decoded))
	copy(out, decoded)
	bb.B = decoded[:0]
	return out, nil
}
