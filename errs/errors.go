// Package errs defines the sentinel errors shared across logstream packages.
//
// All errors are package-level sentinel values so callers can test for them
// with errors.Is after they have been wrapped with call-site context.
package errs

import "errors"

// Decode errors.
var (
	// ErrPacketTooShort is returned when a buffer is smaller than the fixed
	// packet header.
	ErrPacketTooShort = errors.New("packet shorter than header")

	// ErrUnknownMagic is returned when the leading four bytes of a packet do
	// not match any known format family.
	ErrUnknownMagic = errors.New("unknown packet magic")

	// ErrUnsupportedVersion is returned when the packet magic is recognized
	// but the version byte is not one this library implements.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrKindMismatch is returned when a packet of one family is handed to a
	// decoder for another.
	ErrKindMismatch = errors.New("packet kind mismatch")

	// ErrTruncated is returned when a packet ends in the middle of a record,
	// a string table entry or a length-prefixed payload.
	ErrTruncated = errors.New("truncated packet")

	// ErrTrailingBytes is returned when decoding consumed all declared
	// records but bytes remain in the buffer.
	ErrTrailingBytes = errors.New("trailing bytes after last record")

	// ErrStringTableIndex is returned when a field-object record references a
	// string table slot that does not exist.
	ErrStringTableIndex = errors.New("string table index out of range")

	// ErrUnknownEventType is returned when a field-object record carries an
	// event type byte outside the defined enum.
	ErrUnknownEventType = errors.New("unknown field object event type")
)

// Encode errors.
var (
	// ErrInvalidVersion is returned when an encoder is configured with a
	// format version it cannot produce.
	ErrInvalidVersion = errors.New("invalid encoder format version")

	// ErrInvalidByteCap is returned when a payload byte cap option is zero or
	// negative.
	ErrInvalidByteCap = errors.New("invalid payload byte cap")
)

// Collector and upload errors.
var (
	// ErrSessionClosed is returned when a collector is used after its owning
	// session has been closed.
	ErrSessionClosed = errors.New("session closed")

	// ErrUploadStatus is returned when the ingest backend answers with a
	// non-2xx status after all retries.
	ErrUploadStatus = errors.New("unexpected upload status")
)
