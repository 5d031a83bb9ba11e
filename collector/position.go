package collector

import (
	"fmt"

	"github.com/playlytic/logstream/errs"
	"github.com/playlytic/logstream/internal/options"
	"github.com/playlytic/logstream/packet"
	"github.com/playlytic/logstream/record"
)

// Config holds the settings shared by all collector kinds.
type Config struct {
	// Capacity bounds the accumulation buffer; zero means unbounded. A full
	// bounded collector drops its oldest records.
	Capacity int
}

// Option configures a collector.
type Option = options.Option[*Config]

// WithCapacity bounds the accumulation buffer.
func WithCapacity(capacity int) Option {
	return options.New(func(c *Config) error {
		if capacity < 0 {
			return fmt.Errorf("negative collector capacity %d", capacity)
		}
		c.Capacity = capacity

		return nil
	})
}

// PositionCollector accumulates player position samples and encodes them
// into LSLP packets on Flush.
type PositionCollector struct {
	session *Session
	encoder *packet.PositionEncoder
	buf     *ring[record.Position]
}

// NewPositionCollector creates a collector owned by session. A nil encoder
// selects a default (LSLP v2) encoder.
func NewPositionCollector(session *Session, encoder *packet.PositionEncoder, opts ...Option) (*PositionCollector, error) {
	var cfg Config
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if encoder == nil {
		var err error
		if encoder, err = packet.NewPositionEncoder(); err != nil {
			return nil, err
		}
	}

	return &PositionCollector{
		session: session,
		encoder: encoder,
		buf:     newRing[record.Position](cfg.Capacity),
	}, nil
}

// Add buffers a fully formed record.
func (c *PositionCollector) Add(rec record.Position) error {
	if c.session.Closed() {
		return errs.ErrSessionClosed
	}
	c.buf.append(rec)

	return nil
}

// Sample buffers a position sample stamped with the current session offset.
func (c *PositionCollector) Sample(playerID int32, pos record.Vec3, status []byte) error {
	return c.Add(record.Position{
		PlayerID:     playerID,
		Pos:          pos,
		OffsetMillis: c.session.Now(),
		Status:       status,
	})
}

// Len returns the number of buffered records.
func (c *PositionCollector) Len() int {
	return c.buf.len()
}

// Flush exchanges the accumulation buffer for an empty one and encodes the
// drained batch. It is valid on a closed session so a final drain can
// happen, and on an empty buffer, where it yields a valid zero-record
// packet. Encode warnings are logged through the session logger and
// returned.
func (c *PositionCollector) Flush() ([]byte, []packet.Warning) {
	batch, dropped := c.buf.swap()
	data, warnings := c.encoder.Encode(batch)

	logFlush(c.session, "position", len(batch), dropped, warnings)

	return data, warnings
}

func logFlush(session *Session, stream string, count, dropped int, warnings []packet.Warning) {
	logger := session.log()

	if dropped > 0 {
		logger.Warn().Str("stream", stream).Int("dropped", dropped).
			Msg("collector overflow dropped oldest records")
	}
	for _, warning := range warnings {
		logger.Warn().Str("stream", stream).Str("warning", warning.String()).
			Msg("encode degrade")
	}

	logger.Debug().Str("stream", stream).Int("records", count).Msg("flushed batch")
}
