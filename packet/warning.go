package packet

import "fmt"

// WarningCode classifies an encode-time degrade event.
type WarningCode uint8

const (
	// WarnStatusTruncated means a status JSON payload exceeded its byte cap
	// and lost its tail.
	WarnStatusTruncated WarningCode = iota + 1
	// WarnMetadataTruncated means a merged event payload exceeded its byte
	// cap and lost its tail.
	WarnMetadataTruncated
	// WarnScreenshotTruncated means a screenshot blob exceeded its byte cap.
	// The truncated bytes are no longer a valid JPEG; the backend keeps them
	// only as evidence that a capture happened.
	WarnScreenshotTruncated
	// WarnScreenshotsDropped means a record carried more screenshots than
	// the wire format can count and the excess was dropped.
	WarnScreenshotsDropped
	// WarnPayloadUnserializable means an event payload could not be
	// serialized to JSON and was written as absent.
	WarnPayloadUnserializable
	// WarnUnknownEventType means a field object record carried an event type
	// outside the enum and was encoded as spawn.
	WarnUnknownEventType
)

func (c WarningCode) String() string {
	switch c {
	case WarnStatusTruncated:
		return "status_truncated"
	case WarnMetadataTruncated:
		return "metadata_truncated"
	case WarnScreenshotTruncated:
		return "screenshot_truncated"
	case WarnScreenshotsDropped:
		return "screenshots_dropped"
	case WarnPayloadUnserializable:
		return "payload_unserializable"
	case WarnUnknownEventType:
		return "unknown_event_type"
	default:
		return "unknown"
	}
}

// Warning records one degrade event that happened while encoding a batch.
//
// Encoders never fail on oversized or malformed payloads; they clamp and
// continue, and the caller decides whether the accumulated warnings are
// worth logging or acting on. Partial data delivery beats losing a batch
// for best-effort telemetry.
type Warning struct {
	// Code classifies the degrade.
	Code WarningCode
	// Record is the index of the affected record within the batch.
	Record int
	// Index is the screenshot slot for screenshot warnings, otherwise 0.
	Index int
	// Size is the payload size before the degrade, in bytes (for drop
	// warnings, the original screenshot count).
	Size int
	// Cap is the limit that was applied.
	Cap int
	// Err carries the serialization error for WarnPayloadUnserializable.
	Err error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: record %d: %v", w.Code, w.Record, w.Err)
	}

	return fmt.Sprintf("%s: record %d: %d exceeds cap %d", w.Code, w.Record, w.Size, w.Cap)
}
