package packet

import (
	"fmt"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/wire"
)

// DecodedEvent is a general event as reconstructed from an LSEV packet.
//
// The encode side merges metadata and position into one JSON object, so the
// decoder cannot split them apart again; Payload carries the merged JSON as
// written. This asymmetry with record.GeneralEvent is deliberate.
type DecodedEvent struct {
	EventType    string
	OffsetMillis uint64
	Player       int32
	// Payload is the merged metadata+position JSON, nil when absent.
	Payload []byte
	// Screenshots is nil for version 1 packets. For version 2 the slice
	// preserves slot order; a zero-length slot decodes as a nil entry.
	Screenshots [][]byte
}

// DecodeEvents decodes an LSEV packet (version 1 or 2) into events.
func DecodeEvents(data []byte) ([]DecodedEvent, error) {
	engine := endian.Little()

	header, offset, err := wire.ParseHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if header.Kind != format.KindEvent {
		return nil, fmt.Errorf("%w: expected %s, got %s", errs.ErrKindMismatch, format.KindEvent, header.Kind)
	}

	count := int(header.RecordCount)
	minRecordSize := eventFixedSize
	if header.Version == format.EventV2 {
		minRecordSize++
	}
	if err := checkMinSize(len(data)-offset, count, minRecordSize); err != nil {
		return nil, err
	}

	r := wire.NewReader(data, offset, engine)
	out := make([]DecodedEvent, 0, count)

	for i := 0; i < count; i++ {
		var ev DecodedEvent

		if ev.EventType, err = r.String32("event_type"); err != nil {
			return nil, recordErr(i, err)
		}
		if ev.OffsetMillis, err = r.Uint64("offset_timestamp"); err != nil {
			return nil, recordErr(i, err)
		}
		player, err := r.Uint32("player")
		if err != nil {
			return nil, recordErr(i, err)
		}
		ev.Player = int32(player)

		if ev.Payload, err = r.Bytes32("metadata"); err != nil {
			return nil, recordErr(i, err)
		}

		if header.Version == format.EventV2 {
			shotCount, err := r.Uint8("screenshot_count")
			if err != nil {
				return nil, recordErr(i, err)
			}

			ev.Screenshots = make([][]byte, shotCount)
			for j := 0; j < int(shotCount); j++ {
				shot, err := r.Bytes32("screenshot")
				if err != nil {
					return nil, recordErr(i, fmt.Errorf("screenshot %d: %w", j, err))
				}
				ev.Screenshots[j] = shot
			}
		}

		out = append(out, ev)
	}

	if err := r.ExpectEOF(); err != nil {
		return nil, err
	}

	return out, nil
}
