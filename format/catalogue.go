package format

import "fmt"

// ID is a one-byte format descriptor. It is pinned to a series by the first
// channel definition written for that series and never changes for the life
// of a file.
type ID uint8

// Kind classifies the shape of value a format ID decodes to.
type Kind uint8

const (
	// KindInvalid marks a format id this package does not recognize.
	KindInvalid Kind = iota
	// KindFloat32 is a 4-byte IEEE-754 single-precision float.
	KindFloat32
	// KindFloat64 is an 8-byte IEEE-754 double-precision float, optionally
	// carrying a decimals display hint (see Decimals).
	KindFloat64
	// KindString is a UTF-8 string prefixed by a little-endian length.
	KindString
	// KindScaledInt is a fixed-width integer divided by a power of ten.
	KindScaledInt
)

// Reserved format ids for the floating-point and string kinds (§4.2).
const (
	Float32           ID = 0x00
	Double64          ID = 0x01 // decimals hint: 0
	Double64Dec1      ID = 0x02
	Double64Dec2      ID = 0x03
	Double64Dec3      ID = 0x04
	Double64Dec4      ID = 0x05
	Double64Dec5      ID = 0x06
	Double64Dec6Plus  ID = 0x07
	StringLenPrefix8  ID = 0x08
	StringLenPrefix16 ID = 0x09
	StringLenPrefix32 ID = 0x0A
	StringLenPrefix64 ID = 0x0B
)

// doubleDecimalsFormats maps a decimals hint (0..6, where 6 means "6 or
// more") to the double64 format id that carries it as a display hint.
var doubleDecimalsFormats = [7]ID{
	Double64, Double64Dec1, Double64Dec2, Double64Dec3, Double64Dec4, Double64Dec5, Double64Dec6Plus,
}

// stringFormats is ordered narrowest-first so the Compressor can pick the
// first one whose length prefix covers the longest observed string.
var stringFormats = [4]ID{StringLenPrefix8, StringLenPrefix16, StringLenPrefix32, StringLenPrefix64}

// DoubleForDecimals returns the double64 format id carrying the given
// decimals hint, clamping anything at or above 6 to the "6+" format.
func DoubleForDecimals(decimals int) ID {
	if decimals < 0 {
		decimals = 0
	}
	if decimals >= len(doubleDecimalsFormats) {
		decimals = len(doubleDecimalsFormats) - 1
	}
	return doubleDecimalsFormats[decimals]
}

// StringFormatFor returns the narrowest length-prefixed string format id
// whose length prefix can represent a payload of maxLen bytes.
func StringFormatFor(maxLen int) ID {
	for _, id := range stringFormats {
		if uint64(maxLen) <= lengthPrefixMax(id) {
			return id
		}
	}
	return StringLenPrefix64
}

func lengthPrefixMax(id ID) uint64 {
	switch id {
	case StringLenPrefix8:
		return 1<<8 - 1
	case StringLenPrefix16:
		return 1<<16 - 1
	case StringLenPrefix32:
		return 1<<32 - 1
	default:
		return ^uint64(0)
	}
}

// scaledIntShapes maps the high nibble of a scaled-integer format id to its
// byte width and signedness (§4.2).
var scaledIntShapes = map[uint8]struct {
	width  int
	signed bool
}{
	0x1: {1, true}, 0x2: {2, true}, 0x3: {3, true}, 0x4: {4, true}, 0x5: {8, true},
	0x9: {1, false}, 0xA: {2, false}, 0xB: {3, false}, 0xC: {4, false}, 0xD: {8, false},
}

var scales = [4]int64{1, 10, 100, 1000}

// Kind classifies id, returning KindInvalid for any id outside the
// catalogue (§4.2: "All other format ids fail with unsupported format").
func (id ID) Kind() Kind {
	switch id {
	case Float32:
		return KindFloat32
	case Double64, Double64Dec1, Double64Dec2, Double64Dec3, Double64Dec4, Double64Dec5, Double64Dec6Plus:
		return KindFloat64
	case StringLenPrefix8, StringLenPrefix16, StringLenPrefix32, StringLenPrefix64:
		return KindString
	}
	if _, ok := scaledIntShapes[uint8(id)>>4]; ok && uint8(id)&0xF <= 3 {
		return KindScaledInt
	}
	return KindInvalid
}

// Shape returns the byte width, signedness and decimal scale (10^L) of a
// KindScaledInt format id. It panics if id is not a scaled-integer format;
// callers must check Kind first.
func (id ID) Shape() (width int, signed bool, scale int64) {
	shape, ok := scaledIntShapes[uint8(id)>>4]
	if !ok {
		panic(fmt.Sprintf("format: %#02x is not a scaled integer format", uint8(id)))
	}
	return shape.width, shape.signed, scales[uint8(id)&0xF]
}

// Decimals returns the display-decimals hint carried by a KindFloat64
// format id (0..6, where 6 means "6 or more"). It returns 0 for Float32 and
// for any id outside KindFloat64.
func (id ID) Decimals() int {
	for d, candidate := range doubleDecimalsFormats {
		if candidate == id {
			return d
		}
	}
	return 0
}

// StringLenPrefixWidth returns the byte width of the length prefix for a
// KindString format id. It panics if id is not a string format.
func (id ID) StringLenPrefixWidth() int {
	switch id {
	case StringLenPrefix8:
		return 1
	case StringLenPrefix16:
		return 2
	case StringLenPrefix32:
		return 4
	case StringLenPrefix64:
		return 8
	}
	panic(fmt.Sprintf("format: %#02x is not a string format", uint8(id)))
}

// Describe renders a human-readable description of id, used by the `dump`
// CLI verb and by error messages.
func (id ID) Describe() string {
	switch id.Kind() {
	case KindFloat32:
		return "float32"
	case KindFloat64:
		if d := id.Decimals(); d > 0 {
			return fmt.Sprintf("double64 (decimals hint: %d)", d)
		}
		return "double64"
	case KindString:
		return fmt.Sprintf("string, %d-byte length prefix", id.StringLenPrefixWidth())
	case KindScaledInt:
		width, signed, scale := id.Shape()
		sign := "u"
		if signed {
			sign = "i"
		}
		base := fmt.Sprintf("%s%d", sign, width*8)
		if scale == 1 {
			return base
		}
		return fmt.Sprintf("%s, value = raw/%d", base, scale)
	default:
		return fmt.Sprintf("unknown format %#02x", uint8(id))
	}
}

// NumericCandidates enumerates the formats the Compressor tries, in the
// fixed order spec.md §4.6 mandates: 1-byte unsigned, 1-byte signed,
// 2-byte unsigned, 2-byte signed, 3u, 3s, 4u, 4s, float32, 8u, 8s, double64
// — each tried at scales 10^0..10^3 before widening.
func NumericCandidates() []ID {
	order := []uint8{0x9, 0x1, 0xA, 0x2, 0xB, 0x3, 0xC, 0x4}
	candidates := make([]ID, 0, len(order)*4+3)
	for _, hi := range order {
		for lo := uint8(0); lo <= 3; lo++ {
			candidates = append(candidates, ID(hi<<4|lo))
		}
	}
	candidates = append(candidates, Float32)
	for _, hi := range []uint8{0xD, 0x5} {
		for lo := uint8(0); lo <= 3; lo++ {
			candidates = append(candidates, ID(hi<<4|lo))
		}
	}
	candidates = append(candidates, Double64)
	return candidates
}
