package wire

import (
	"math"

	"github.com/jovermann/pvview/format"
)

// ReadValue decodes a value of the given format, dispatching on its Kind.
// It returns the value as float64, string or int64 widened to float64 for
// scaled integers — callers that need the original shape inspect id.Kind()
// themselves before calling this.
func ReadValue(buf []byte, id format.ID) (any, int, error) {
	switch id.Kind() {
	case format.KindFloat32:
		v, n, err := ReadFloat32(buf)
		return float64(v), n, err
	case format.KindFloat64:
		v, n, err := ReadFloat64(buf)
		return v, n, err
	case format.KindString:
		v, n, err := ReadString(buf, id.StringLenPrefixWidth())
		return v, n, err
	case format.KindScaledInt:
		width, signed, scale := id.Shape()
		raw, n, err := ReadScalar(buf, width, signed)
		if err != nil {
			return nil, 0, err
		}
		return float64(raw) / float64(scale), n, nil
	}
	return nil, 0, ErrUnsupportedFormat
}

// equal6Digits reports whether a and b agree once both are rounded to six
// decimal digits, the precision floor the Compressor (and the append-time
// re-encode check) must preserve.
func equal6Digits(a, b float64) bool {
	const scale = 1e6
	return math.Round(a*scale) == math.Round(b*scale)
}

// EncodeValue renders value in the given format, returning (dst, false) if
// value cannot be represented losslessly (at 6 significant decimal digits)
// in that format — the same contract as the Python reference's
// _encode_value_for_format, used both by the Writer/Appender (format is
// fixed by the channel definition) and by the Compressor when probing
// candidate formats.
func EncodeValue(dst []byte, value any, id format.ID) ([]byte, bool) {
	switch id.Kind() {
	case format.KindFloat64:
		numeric, ok := asFloat64(value)
		if !ok || !isFinite(numeric) {
			return dst, false
		}
		return PutFloat64(dst, numeric), true

	case format.KindFloat32:
		numeric, ok := asFloat64(value)
		if !ok || !isFinite(numeric) {
			return dst, false
		}
		encoded := float32(numeric)
		if !equal6Digits(numeric, float64(encoded)) {
			return dst, false
		}
		return PutFloat32(dst, encoded), true

	case format.KindString:
		s, ok := value.(string)
		if !ok {
			return dst, false
		}
		width := id.StringLenPrefixWidth()
		if uint64(len(s)) > stringMax(width) {
			return dst, false
		}
		return PutString(dst, s, width), true

	case format.KindScaledInt:
		numeric, ok := asFloat64(value)
		if !ok || !isFinite(numeric) {
			return dst, false
		}
		width, signed, scale := id.Shape()
		scaled := math.Round(numeric * float64(scale))
		low, high := scalarRange(width, signed)
		if scaled < low || scaled > high {
			return dst, false
		}
		reconstructed := scaled / float64(scale)
		if !equal6Digits(numeric, reconstructed) {
			return dst, false
		}
		return PutScalar(dst, int64(scaled), width, signed), true
	}
	return dst, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func stringMax(prefixWidth int) uint64 {
	switch prefixWidth {
	case 1:
		return 1<<8 - 1
	case 2:
		return 1<<16 - 1
	case 4:
		return 1<<32 - 1
	default:
		return ^uint64(0)
	}
}

// scalarRange returns the inclusive [low, high] range a width-byte integer
// of the given signedness can hold, as float64 (8-byte unsigned ranges are
// clamped to fit, matching the catalogue's real-world usage).
func scalarRange(width int, signed bool) (low, high float64) {
	bits := uint(width * 8)
	if signed {
		high = float64(int64(1)<<(bits-1) - 1)
		low = -float64(int64(1) << (bits - 1))
		return
	}
	if bits >= 64 {
		return 0, float64(uint64(math.MaxUint64))
	}
	return 0, float64(int64(1)<<bits - 1)
}
