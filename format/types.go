// Package format defines the identifiers shared by every logstream packet
// family: magic strings, format versions and the transport compression
// types understood by the upload client.
package format

// Kind identifies a packet format family by its 4-byte ASCII magic.
type Kind string

const (
	// KindPosition is the player position stream family ("LSLP").
	KindPosition Kind = "LSLP"
	// KindFieldObject is the field object lifecycle stream family ("LSFO").
	KindFieldObject Kind = "LSFO"
	// KindEvent is the general event stream family ("LSEV").
	KindEvent Kind = "LSEV"
)

// MagicSize is the length of every packet magic in bytes.
const MagicSize = 4

// Format versions per family. The version byte immediately follows the magic.
const (
	// PositionV1 is the legacy position format without status payloads.
	PositionV1 uint8 = 1
	// PositionV2 is the current position format with per-record status JSON.
	PositionV2 uint8 = 2

	// FieldObjectV1 is the only field object format version.
	FieldObjectV1 uint8 = 1

	// EventV1 is the compact event format without screenshot attachments.
	EventV1 uint8 = 1
	// EventV2 extends EventV1 with per-record screenshot blobs.
	EventV2 uint8 = 2
)

func (k Kind) String() string {
	switch k {
	case KindPosition:
		return "position"
	case KindFieldObject:
		return "field_object"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the defined packet families.
func (k Kind) Valid() bool {
	switch k {
	case KindPosition, KindFieldObject, KindEvent:
		return true
	default:
		return false
	}
}

// CompressionType selects the transport codec used to compress packet bodies
// before upload. It never affects the packet bytes themselves; the wire
// formats are uncompressed by contract with the backend.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // no transport compression
	CompressionZstd CompressionType = 0x2 // Zstandard
	CompressionS2   CompressionType = 0x3 // S2 (Snappy-compatible)
	CompressionLZ4  CompressionType = 0x4 // LZ4 block format
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ContentEncoding returns the HTTP Content-Encoding token for c, or an empty
// string when no header should be sent.
func (c CompressionType) ContentEncoding() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return ""
	}
}
