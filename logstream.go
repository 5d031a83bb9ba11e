// Package logstream encodes gameplay telemetry into compact binary log
// packets and decodes them back.
//
// Three stream families share one packet shape, a fixed header followed by
// length-prefixed records, all little-endian:
//
//   - LSLP: player position samples, with per-record status JSON
//   - LSFO: field object lifecycle events, with a shared string table that
//     deduplicates repeated object identifiers and type names
//   - LSEV: general gameplay events, with merged JSON payloads and optional
//     screenshot attachments
//
// # Basic Usage
//
// Encoding a position packet:
//
//	import "github.com/playlytic/logstream"
//
//	data, warnings := logstream.EncodePositions([]record.Position{
//	    {PlayerID: 7, Pos: record.Vec3{X: 1, Y: 2, Z: 3}, OffsetMillis: 1500},
//	})
//	for _, w := range warnings {
//	    log.Println(w)
//	}
//
// Decoding it again:
//
//	records, err := logstream.DecodePositions(data)
//
// Encoding never fails: oversized payloads are truncated or dropped and
// reported as warnings, so a telemetry pipeline keeps flowing when a single
// record misbehaves. Decoding is strict and rejects malformed input with
// sentinel errors from the errs package.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the packet
// package with default settings. For version selection, byte cap tuning and
// the buffering collectors, use the packet and collector packages directly.
package logstream

import (
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/packet"
	"github.com/playlytic/logstream/record"
	"github.com/playlytic/logstream/wire"
)

// EncodePositions encodes position records into an LSLP packet with default
// settings (current format version, default status byte cap).
func EncodePositions(records []record.Position) ([]byte, []packet.Warning) {
	encoder, _ := packet.NewPositionEncoder()
	return encoder.Encode(records)
}

// DecodePositions decodes an LSLP packet.
func DecodePositions(data []byte) ([]record.Position, error) {
	return packet.DecodePositions(data)
}

// EncodeFieldObjects encodes field object records into an LSFO packet with
// default settings.
func EncodeFieldObjects(records []record.FieldObject) ([]byte, []packet.Warning) {
	encoder, _ := packet.NewFieldObjectEncoder()
	return encoder.Encode(records)
}

// DecodeFieldObjects decodes an LSFO packet.
func DecodeFieldObjects(data []byte) ([]record.FieldObject, error) {
	return packet.DecodeFieldObjects(data)
}

// EncodeEvents encodes general event records into an LSEV packet with
// default settings. The format version is chosen per batch: v2 when any
// record carries screenshots, v1 otherwise.
func EncodeEvents(records []record.GeneralEvent) ([]byte, []packet.Warning) {
	encoder, _ := packet.NewEventEncoder()
	return encoder.Encode(records)
}

// DecodeEvents decodes an LSEV packet.
func DecodeEvents(data []byte) ([]packet.DecodedEvent, error) {
	return packet.DecodeEvents(data)
}

// Sniff inspects a packet's magic and version without decoding its records.
func Sniff(data []byte) (format.Kind, uint8, error) {
	return wire.Sniff(data)
}
