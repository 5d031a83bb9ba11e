package packet

import (
	"fmt"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/internal/options"
	"github.com/playlytic/logstream/record"
	"github.com/playlytic/logstream/wire"
)

// fieldObjectFixedSize is the per-record size excluding the status payload:
// object_id_index(4) + object_type_index(4) + event_type(1) +
// coordinates(12) + offset_timestamp(8) + status_len(4).
const fieldObjectFixedSize = 33

// FieldObjectEncoder encodes batches of field object lifecycle events into
// LSFO packets.
//
// Object identifiers and types repeat heavily across a session's event
// stream, so the format stores every distinct string once in a shared table
// and records reference table indices. The table is built in a single
// linear pass in first-occurrence order, which keeps encoding O(n) and the
// output deterministic.
type FieldObjectEncoder struct {
	engine    endian.Engine
	statusCap int
}

// FieldObjectEncoderOption configures a FieldObjectEncoder.
type FieldObjectEncoderOption = options.Option[*FieldObjectEncoder]

// WithFieldObjectStatusCap overrides the status payload byte cap. The
// default is wire.StatusByteCap.
func WithFieldObjectStatusCap(capBytes int) FieldObjectEncoderOption {
	return options.New(func(e *FieldObjectEncoder) error {
		if capBytes <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidByteCap, capBytes)
		}
		e.statusCap = capBytes

		return nil
	})
}

// NewFieldObjectEncoder creates a FieldObjectEncoder.
func NewFieldObjectEncoder(opts ...FieldObjectEncoderOption) (*FieldObjectEncoder, error) {
	encoder := &FieldObjectEncoder{
		engine:    endian.Little(),
		statusCap: wire.StatusByteCap,
	}

	if err := options.Apply(encoder, opts...); err != nil {
		return nil, err
	}

	return encoder, nil
}

// Encode serializes a batch of field object events into one immutable
// packet.
//
// Encode never fails. An empty batch produces a valid packet with zero
// records and an empty string table. Records with an event type outside the
// enum are encoded as spawn and reported in the warnings; oversized status
// payloads are truncated to the byte cap and reported likewise.
func (e *FieldObjectEncoder) Encode(records []record.FieldObject) ([]byte, []Warning) {
	var warnings []Warning

	// Single pass: intern strings in first-occurrence order, resolve event
	// types and clamp status payloads, accumulating the exact output size.
	table := make([]string, 0, len(records))
	tableIndex := make(map[string]uint32, len(records))
	tableBytes := 0

	intern := func(s string) uint32 {
		if idx, ok := tableIndex[s]; ok {
			return idx
		}
		idx := uint32(len(table)) //nolint:gosec
		tableIndex[s] = idx
		table = append(table, s)
		tableBytes += 4 + len(s)

		return idx
	}

	idIndexes := make([]uint32, len(records))
	typeIndexes := make([]uint32, len(records))
	events := make([]record.FieldObjectEvent, len(records))
	statuses := make([][]byte, len(records))
	statusBytes := 0

	for i := range records {
		rec := &records[i]

		idIndexes[i] = intern(rec.ObjectID)
		typeIndexes[i] = intern(rec.ObjectType)

		events[i] = rec.Event
		if !rec.Event.Valid() {
			// Unknown lifecycle stages degrade to spawn rather than sinking
			// the batch.
			events[i] = record.FieldObjectSpawn
			warnings = append(warnings, Warning{
				Code:   WarnUnknownEventType,
				Record: i,
				Size:   int(rec.Event),
			})
		}

		clamped, truncated := wire.Clamp(rec.Status, e.statusCap)
		if truncated {
			warnings = append(warnings, Warning{
				Code:   WarnStatusTruncated,
				Record: i,
				Size:   len(rec.Status),
				Cap:    e.statusCap,
			})
		}
		statuses[i] = clamped
		statusBytes += len(clamped)
	}

	size := wire.FieldObjectHeaderSize + tableBytes + len(records)*fieldObjectFixedSize + statusBytes

	w := wire.NewWriter(size, e.engine)
	w.WriteHeader(wire.Header{
		Kind:             format.KindFieldObject,
		Version:          format.FieldObjectV1,
		RecordCount:      uint32(len(records)), //nolint:gosec
		StringTableCount: uint32(len(table)),   //nolint:gosec
	})

	for _, entry := range table {
		w.String32(entry)
	}

	for i := range records {
		rec := &records[i]
		pos := rec.Pos.Backend()

		w.Uint32(idIndexes[i])
		w.Uint32(typeIndexes[i])
		w.Uint8(uint8(events[i]))
		w.Float32(pos.X)
		w.Float32(pos.Y)
		w.Float32(pos.Z)
		w.Uint64(rec.OffsetMillis)
		w.Bytes32(statuses[i])
	}

	return w.Bytes(), warnings
}
