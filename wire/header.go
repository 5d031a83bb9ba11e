package wire

import (
	"fmt"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
)

// Header is the leading section of every logstream packet.
//
// The backend sniffs the magic and version to select a decoder; no other
// content negotiation exists.
type Header struct {
	// Kind is the format family, identified by the 4-byte ASCII magic.
	Kind format.Kind
	// Version is the format version within the family.
	Version uint8
	// RecordCount is the number of records that follow.
	RecordCount uint32
	// StringTableCount is the number of string table entries. Only present
	// on the wire for field object packets.
	StringTableCount uint32
}

// Size returns the encoded header size in bytes for this header's family.
func (h Header) Size() int {
	if h.Kind == format.KindFieldObject {
		return FieldObjectHeaderSize
	}

	return HeaderSize
}

// AppendTo appends the encoded header to buf and returns the extended slice.
func (h Header) AppendTo(buf []byte, engine endian.Engine) []byte {
	buf = append(buf, h.Kind...)
	buf = append(buf, h.Version)
	buf = engine.AppendUint32(buf, h.RecordCount)
	if h.Kind == format.KindFieldObject {
		buf = engine.AppendUint32(buf, h.StringTableCount)
	}

	return buf
}

// Sniff reads the magic and version of a packet without validating the rest
// of the header. It is the entry point for decoder selection.
func Sniff(data []byte) (format.Kind, uint8, error) {
	if len(data) < format.MagicSize+1 {
		return "", 0, errs.ErrPacketTooShort
	}

	kind := format.Kind(data[:format.MagicSize])
	if !kind.Valid() {
		return "", 0, fmt.Errorf("%w: %q", errs.ErrUnknownMagic, data[:format.MagicSize])
	}

	return kind, data[format.MagicSize], nil
}

// ParseHeader parses and validates a packet header. It returns the header
// and the number of bytes consumed.
//
// Unknown magics and versions are rejected explicitly: the formats were
// never designed for forward compatibility, so guessing would only defer
// the failure to record parsing.
func ParseHeader(data []byte, engine endian.Engine) (Header, int, error) {
	kind, version, err := Sniff(data)
	if err != nil {
		return Header{}, 0, err
	}

	if !versionSupported(kind, version) {
		return Header{}, 0, fmt.Errorf("%w: %s version %d", errs.ErrUnsupportedVersion, kind, version)
	}

	header := Header{Kind: kind, Version: version}
	if len(data) < header.Size() {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrPacketTooShort, len(data), header.Size())
	}

	header.RecordCount = engine.Uint32(data[5:9])
	if kind == format.KindFieldObject {
		header.StringTableCount = engine.Uint32(data[9:13])
	}

	return header, header.Size(), nil
}

func versionSupported(kind format.Kind, version uint8) bool {
	switch kind {
	case format.KindPosition:
		return version == format.PositionV1 || version == format.PositionV2
	case format.KindFieldObject:
		return version == format.FieldObjectV1
	case format.KindEvent:
		return version == format.EventV1 || version == format.EventV2
	default:
		return false
	}
}
