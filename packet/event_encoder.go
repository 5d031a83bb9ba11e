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

// eventFixedSize is the per-record size excluding variable payloads:
// event_type_len(4) + offset_timestamp(8) + player(4) + metadata_len(4).
const eventFixedSize = 20

// EventEncoder encodes batches of general events into LSEV packets.
//
// The format version is a batch-level decision made before the header is
// written: when any record in the batch carries at least one screenshot the
// whole batch is encoded as version 2, otherwise as the compact version 1.
// A single batch never mixes versions.
type EventEncoder struct {
	engine        endian.Engine
	metadataCap   int
	screenshotCap int
}

// EventEncoderOption configures an EventEncoder.
type EventEncoderOption = options.Option[*EventEncoder]

// WithEventMetadataCap overrides the merged metadata payload byte cap. The
// default is wire.MetadataByteCap.
func WithEventMetadataCap(capBytes int) EventEncoderOption {
	return options.New(func(e *EventEncoder) error {
		if capBytes <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidByteCap, capBytes)
		}
		e.metadataCap = capBytes

		return nil
	})
}

// WithEventScreenshotCap overrides the per-screenshot byte cap. The default
// is wire.ScreenshotByteCap.
//
// Truncating a JPEG by byte length corrupts it; the clamp exists to bound
// packet size, and the backend treats a truncated image as evidence of a
// capture rather than a viewable picture.
func WithEventScreenshotCap(capBytes int) EventEncoderOption {
	return options.New(func(e *EventEncoder) error {
		if capBytes <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidByteCap, capBytes)
		}
		e.screenshotCap = capBytes

		return nil
	})
}

// NewEventEncoder creates an EventEncoder.
func NewEventEncoder(opts ...EventEncoderOption) (*EventEncoder, error) {
	encoder := &EventEncoder{
		engine:        endian.Little(),
		metadataCap:   wire.MetadataByteCap,
		screenshotCap: wire.ScreenshotByteCap,
	}

	if err := options.Apply(encoder, opts...); err != nil {
		return nil, err
	}

	return encoder, nil
}

// Encode serializes a batch of general events into one immutable packet.
//
// Encode never fails. Per record, metadata and position are merged into one
// JSON payload (position keys overwrite metadata keys on collision) before
// serialization; a payload that cannot be serialized is written as absent
// and reported in the warnings, as are clamped payloads, clamped
// screenshots and screenshot counts beyond the wire limit.
func (e *EventEncoder) Encode(records []record.GeneralEvent) ([]byte, []Warning) {
	var warnings []Warning

	// Batch-level version scan, before anything is written.
	version := format.EventV1
	for i := range records {
		if records[i].HasScreenshots() {
			version = format.EventV2
			break
		}
	}

	// Resolve payloads and screenshot sets up front so the output buffer
	// can be allocated exactly once.
	payloads := make([][]byte, len(records))
	size := wire.HeaderSize + len(records)*eventFixedSize

	var screenshots [][][]byte
	if version == format.EventV2 {
		screenshots = make([][][]byte, len(records))
		size += len(records) // screenshot_count byte per record
	}

	for i := range records {
		rec := &records[i]
		size += len(rec.EventType)

		payload, err := rec.PayloadJSON()
		if err != nil {
			warnings = append(warnings, Warning{
				Code:   WarnPayloadUnserializable,
				Record: i,
				Err:    err,
			})
			payload = nil
		}

		clamped, truncated := wire.Clamp(payload, e.metadataCap)
		if truncated {
			warnings = append(warnings, Warning{
				Code:   WarnMetadataTruncated,
				Record: i,
				Size:   len(payload),
				Cap:    e.metadataCap,
			})
		}
		payloads[i] = clamped
		size += len(clamped)

		if version != format.EventV2 {
			continue
		}

		shots := rec.Screenshots
		if len(shots) > wire.MaxScreenshots {
			warnings = append(warnings, Warning{
				Code:   WarnScreenshotsDropped,
				Record: i,
				Size:   len(shots),
				Cap:    wire.MaxScreenshots,
			})
			shots = shots[:wire.MaxScreenshots]
		}

		kept := make([][]byte, len(shots))
		for j, shot := range shots {
			clampedShot, truncatedShot := wire.Clamp(shot, e.screenshotCap)
			if truncatedShot {
				warnings = append(warnings, Warning{
					Code:   WarnScreenshotTruncated,
					Record: i,
					Index:  j,
					Size:   len(shot),
					Cap:    e.screenshotCap,
				})
			}
			kept[j] = clampedShot
			size += 4 + len(clampedShot)
		}
		screenshots[i] = kept
	}

	w := wire.NewWriter(size, e.engine)
	w.WriteHeader(wire.Header{
		Kind:        format.KindEvent,
		Version:     version,
		RecordCount: uint32(len(records)), //nolint:gosec
	})

	for i := range records {
		rec := &records[i]

		w.String32(rec.EventType)
		w.Uint64(rec.OffsetMillis)
		w.Uint32(uint32(rec.Player))
		w.Bytes32(payloads[i])

		if version == format.EventV2 {
			w.Uint8(uint8(len(screenshots[i]))) //nolint:gosec
			for _, shot := range screenshots[i] {
				w.Bytes32(shot)
			}
		}
	}

	return w.Bytes(), warnings
}
