package collector

import (
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/internal/options"
	"github.com/playlytic/logstream/packet"
	"github.com/playlytic/logstream/record"
)

// FrameSource supplies recently captured frames as JPEG bytes. The actual
// capture pipeline is engine-bound and lives with the host application;
// collectors only pull from this interface and never touch engine state.
type FrameSource interface {
	// RecentFrames returns up to n of the most recent frames, newest last.
	// Entries may be nil when a capture slot was empty.
	RecentFrames(n int) [][]byte
}

// EventCollector accumulates general events and encodes them into LSEV
// packets on Flush.
type EventCollector struct {
	session *Session
	encoder *packet.EventEncoder
	buf     *ring[record.GeneralEvent]
}

// NewEventCollector creates a collector owned by session. A nil encoder
// selects a default encoder.
func NewEventCollector(session *Session, encoder *packet.EventEncoder, opts ...Option) (*EventCollector, error) {
	var cfg Config
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if encoder == nil {
		var err error
		if encoder, err = packet.NewEventEncoder(); err != nil {
			return nil, err
		}
	}

	return &EventCollector{
		session: session,
		encoder: encoder,
		buf:     newRing[record.GeneralEvent](cfg.Capacity),
	}, nil
}

// Add buffers a fully formed record.
func (c *EventCollector) Add(rec record.GeneralEvent) error {
	if c.session.Closed() {
		return errs.ErrSessionClosed
	}
	c.buf.append(rec)

	return nil
}

// Log buffers an event stamped with the current session offset.
func (c *EventCollector) Log(eventType string, player int32, metadata map[string]any, pos *record.Vec3) error {
	return c.Add(record.GeneralEvent{
		EventType:    eventType,
		OffsetMillis: c.session.Now(),
		Player:       player,
		Metadata:     metadata,
		Position:     pos,
	})
}

// LogWithFrames buffers an event with up to frameCount screenshots pulled
// from the frame source. A nil source logs the event without screenshots.
func (c *EventCollector) LogWithFrames(eventType string, player int32, metadata map[string]any, pos *record.Vec3, frames FrameSource, frameCount int) error {
	rec := record.GeneralEvent{
		EventType:    eventType,
		OffsetMillis: c.session.Now(),
		Player:       player,
		Metadata:     metadata,
		Position:     pos,
	}
	if frames != nil && frameCount > 0 {
		rec.Screenshots = frames.RecentFrames(frameCount)
	}

	return c.Add(rec)
}

// Len returns the number of buffered records.
func (c *EventCollector) Len() int {
	return c.buf.len()
}

// Flush exchanges the accumulation buffer for an empty one and encodes the
// drained batch. See PositionCollector.Flush for the contract.
func (c *EventCollector) Flush() ([]byte, []packet.Warning) {
	batch, dropped := c.buf.swap()
	data, warnings := c.encoder.Encode(batch)

	logFlush(c.session, "event", len(batch), dropped, warnings)

	return data, warnings
}
