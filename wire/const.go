package wire

// Packet header sizes in bytes. Every family starts with
// magic(4) | version(1) | record_count(4); the field object family adds a
// string_table_count(4) before its records.
const (
	// HeaderSize is the fixed header size for position and event packets.
	HeaderSize = 9
	// FieldObjectHeaderSize is the fixed header size for field object
	// packets.
	FieldObjectHeaderSize = HeaderSize + 4
)

// Payload byte caps. Oversized payloads are truncated to exactly these
// lengths, never rejected: losing one field beats losing the whole batch.
const (
	// StatusByteCap bounds the per-record status JSON in position and field
	// object packets.
	StatusByteCap = 5 * 1024 * 1024
	// MetadataByteCap bounds the per-record merged metadata JSON in event
	// packets.
	MetadataByteCap = 1 * 1024 * 1024
	// ScreenshotByteCap bounds a single screenshot blob in event packets.
	ScreenshotByteCap = 500 * 1024
	// MaxScreenshots is the most screenshots one event record can carry;
	// the count is a single byte on the wire.
	MaxScreenshots = 255
)
