package packet

import (
	"fmt"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/format"
	"github.com/playlytic/logstream/record"
	"github.com/playlytic/logstream/wire"
)

// DecodePositions decodes an LSLP packet (version 1 or 2) into position
// records.
//
// Decoded coordinates stay in the backend convention the packet carries;
// use record.Vec3.Game to approximate the original game-space values.
// Version 1 packets yield records with nil Status.
//
// Returns:
//   - []record.Position: decoded records, empty (non-nil) for a zero-record
//     packet
//   - error: errs.ErrUnknownMagic, errs.ErrKindMismatch,
//     errs.ErrUnsupportedVersion, errs.ErrTruncated or errs.ErrTrailingBytes
func DecodePositions(data []byte) ([]record.Position, error) {
	engine := endian.Little()

	header, offset, err := wire.ParseHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if header.Kind != format.KindPosition {
		return nil, fmt.Errorf("%w: expected %s, got %s", errs.ErrKindMismatch, format.KindPosition, header.Kind)
	}

	count := int(header.RecordCount)
	minRecordSize := positionFixedSize
	if header.Version == format.PositionV2 {
		minRecordSize += 4
	}
	if err := checkMinSize(len(data)-offset, count, minRecordSize); err != nil {
		return nil, err
	}

	r := wire.NewReader(data, offset, engine)
	out := make([]record.Position, 0, count)

	for i := 0; i < count; i++ {
		var rec record.Position

		if rec.PlayerID, err = r.Int32("player_id"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.Pos.X, err = r.Float32("x"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.Pos.Y, err = r.Float32("y"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.Pos.Z, err = r.Float32("z"); err != nil {
			return nil, recordErr(i, err)
		}
		if rec.OffsetMillis, err = r.Uint64("offset_timestamp"); err != nil {
			return nil, recordErr(i, err)
		}
		if header.Version == format.PositionV2 {
			if rec.Status, err = r.Bytes32("status"); err != nil {
				return nil, recordErr(i, err)
			}
		}

		out = append(out, rec)
	}

	if err := r.ExpectEOF(); err != nil {
		return nil, err
	}

	return out, nil
}

// checkMinSize rejects packets whose remaining bytes cannot possibly hold
// the declared record count. This bounds the output allocation before the
// record loop, so a hostile record count cannot force a huge make().
func checkMinSize(remaining, count, minRecordSize int) error {
	if uint64(remaining) < uint64(count)*uint64(minRecordSize) { //nolint:gosec
		return fmt.Errorf("%w: %d bytes cannot hold %d records of at least %d bytes",
			errs.ErrTruncated, remaining, count, minRecordSize)
	}

	return nil
}

func recordErr(index int, err error) error {
	return fmt.Errorf("record %d: %w", index, err)
}
