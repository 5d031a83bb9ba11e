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

// positionFixedSize is the per-record size excluding the status payload:
// player_id(4) + coordinates(12) + offset_timestamp(8).
const positionFixedSize = 24

// PositionEncoder encodes batches of player position samples into LSLP
// packets.
//
// The encoder is stateless between calls and safe to share across
// goroutines as long as each input batch is not mutated during its Encode
// call. The default output is format version 2; version 1 is the legacy
// layout without status payloads, retained for compatibility.
type PositionEncoder struct {
	engine    endian.Engine
	version   uint8
	statusCap int
}

// PositionEncoderOption configures a PositionEncoder.
type PositionEncoderOption = options.Option[*PositionEncoder]

// WithPositionVersion selects the LSLP format version to emit (1 or 2).
func WithPositionVersion(version uint8) PositionEncoderOption {
	return options.New(func(e *PositionEncoder) error {
		if version != format.PositionV1 && version != format.PositionV2 {
			return fmt.Errorf("%w: position version %d", errs.ErrInvalidVersion, version)
		}
		e.version = version

		return nil
	})
}

// WithPositionStatusCap overrides the status payload byte cap. The default
// is wire.StatusByteCap.
func WithPositionStatusCap(capBytes int) PositionEncoderOption {
	return options.New(func(e *PositionEncoder) error {
		if capBytes <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidByteCap, capBytes)
		}
		e.statusCap = capBytes

		return nil
	})
}

// NewPositionEncoder creates a PositionEncoder.
//
// Parameters:
//   - opts: optional configuration (format version, status byte cap)
//
// Returns:
//   - *PositionEncoder: encoder emitting LSLP v2 unless configured otherwise
//   - error: invalid option error
func NewPositionEncoder(opts ...PositionEncoderOption) (*PositionEncoder, error) {
	encoder := &PositionEncoder{
		engine:    endian.Little(),
		version:   format.PositionV2,
		statusCap: wire.StatusByteCap,
	}

	if err := options.Apply(encoder, opts...); err != nil {
		return nil, err
	}

	return encoder, nil
}

// Encode serializes a batch of position samples into one immutable packet.
//
// Encode never fails. An empty batch produces a valid zero-record packet.
// Oversized status payloads are truncated to the byte cap and reported in
// the returned warnings.
//
// Coordinates are written in the backend convention (record.Vec3.Backend):
// axes permuted and scaled by 100. This is a fixed contract with the
// backend decoder.
func (e *PositionEncoder) Encode(records []record.Position) ([]byte, []Warning) {
	var warnings []Warning

	// Clamp pass: resolve final payload sizes so the output buffer can be
	// allocated exactly once.
	size := wire.HeaderSize + len(records)*positionFixedSize

	var statuses [][]byte
	if e.version == format.PositionV2 {
		statuses = make([][]byte, len(records))
		size += len(records) * 4
		for i := range records {
			clamped, truncated := wire.Clamp(records[i].Status, e.statusCap)
			if truncated {
				warnings = append(warnings, Warning{
					Code:   WarnStatusTruncated,
					Record: i,
					Size:   len(records[i].Status),
					Cap:    e.statusCap,
				})
			}
			statuses[i] = clamped
			size += len(clamped)
		}
	}

	w := wire.NewWriter(size, e.engine)
	w.WriteHeader(wire.Header{
		Kind:        format.KindPosition,
		Version:     e.version,
		RecordCount: uint32(len(records)), //nolint:gosec
	})

	for i := range records {
		rec := &records[i]
		pos := rec.Pos.Backend()

		w.Int32(rec.PlayerID)
		w.Float32(pos.X)
		w.Float32(pos.Y)
		w.Float32(pos.Z)
		w.Uint64(rec.OffsetMillis)
		if e.version == format.PositionV2 {
			w.Bytes32(statuses[i])
		}
	}

	return w.Bytes(), warnings
}
