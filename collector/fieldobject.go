package collector

import (
	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/internal/options"
	"github.com/playlytic/logstream/packet"
	"github.com/playlytic/logstream/record"
)

// FieldObjectCollector accumulates field object lifecycle events and
// encodes them into LSFO packets on Flush.
type FieldObjectCollector struct {
	session *Session
	encoder *packet.FieldObjectEncoder
	buf     *ring[record.FieldObject]
}

// NewFieldObjectCollector creates a collector owned by session. A nil
// encoder selects a default encoder.
func NewFieldObjectCollector(session *Session, encoder *packet.FieldObjectEncoder, opts ...Option) (*FieldObjectCollector, error) {
	var cfg Config
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if encoder == nil {
		var err error
		if encoder, err = packet.NewFieldObjectEncoder(); err != nil {
			return nil, err
		}
	}

	return &FieldObjectCollector{
		session: session,
		encoder: encoder,
		buf:     newRing[record.FieldObject](cfg.Capacity),
	}, nil
}

// Add buffers a fully formed record.
func (c *FieldObjectCollector) Add(rec record.FieldObject) error {
	if c.session.Closed() {
		return errs.ErrSessionClosed
	}
	c.buf.append(rec)

	return nil
}

// LogEvent buffers a lifecycle event stamped with the current session
// offset.
func (c *FieldObjectCollector) LogEvent(objectID, objectType string, event record.FieldObjectEvent, pos record.Vec3, status []byte) error {
	return c.Add(record.FieldObject{
		ObjectID:     objectID,
		ObjectType:   objectType,
		Pos:          pos,
		OffsetMillis: c.session.Now(),
		Event:        event,
		Status:       status,
	})
}

// Len returns the number of buffered records.
func (c *FieldObjectCollector) Len() int {
	return c.buf.len()
}

// Flush exchanges the accumulation buffer for an empty one and encodes the
// drained batch. See PositionCollector.Flush for the contract.
func (c *FieldObjectCollector) Flush() ([]byte, []packet.Warning) {
	batch, dropped := c.buf.swap()
	data, warnings := c.encoder.Encode(batch)

	logFlush(c.session, "field_object", len(batch), dropped, warnings)

	return data, warnings
}
