package format

// Magic is the 8-byte tag every pvview TSDB log file starts with (§6).
var Magic = [8]byte{'T', 'S', 'D', 'B', 0, 0, 0, 0}

// Version is the only file-format version this package understands.
const Version uint32 = 1

// HeaderSize is the number of bytes the header (magic + version) occupies.
const HeaderSize = 12

// EntryTag identifies the kind of entry a parser is about to read. Tags
// 0x00-0xEF double as 1-byte channel ids for Value-8 entries (§4.3).
type EntryTag uint8

const (
	// TagAbsTS sets the current timestamp to an absolute u64 millisecond value.
	TagAbsTS EntryTag = 0xF0
	// TagRelTS8 advances the current timestamp by a u8 millisecond delta.
	TagRelTS8 EntryTag = 0xF1
	// TagRelTS16 advances the current timestamp by a u16 millisecond delta.
	TagRelTS16 EntryTag = 0xF2
	// TagRelTS24 advances the current timestamp by a u24 millisecond delta.
	TagRelTS24 EntryTag = 0xF3
	// TagRelTS32 advances the current timestamp by a u32 millisecond delta.
	TagRelTS32 EntryTag = 0xF4
	// TagDefCh8 defines a channel with an 8-bit id.
	TagDefCh8 EntryTag = 0xF5
	// TagDefCh16 defines a channel with a 16-bit id.
	TagDefCh16 EntryTag = 0xF6
	// TagEOF marks a clean close.
	TagEOF EntryTag = 0xFE
	// TagValue16 attaches a value to a channel addressed by a 16-bit id.
	TagValue16 EntryTag = 0xFF
)

// MaxValue8Channel is the highest channel id that can be framed as a
// 1-byte Value-8 entry; channels above it require the Value-16 framing.
const MaxValue8Channel = 0xEF

// MaxChannelID is the largest channel id the 16-bit framing can address.
const MaxChannelID = 0xFFFF

// MaxSeriesNameBytes is the largest UTF-8 encoded series name a channel
// definition can carry (its length prefix is a single byte).
const MaxSeriesNameBytes = 255
