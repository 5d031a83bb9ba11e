package collector

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playlytic/logstream/internal/options"
)

// Session carries the identity and timebase shared by all collectors of one
// gameplay session.
//
// Offset timestamps across every packet of a session are milliseconds since
// the session start, not wall clock; the backend aligns records from
// different streams using this shared epoch.
type Session struct {
	id     uuid.UUID
	start  time.Time
	logger zerolog.Logger
	closed atomic.Bool
}

// SessionOption configures a Session.
type SessionOption = options.Option[*Session]

// WithLogger sets the logger used for collector diagnostics. The default
// discards everything.
func WithLogger(logger zerolog.Logger) SessionOption {
	return options.NoError(func(s *Session) {
		s.logger = logger
	})
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id uuid.UUID) SessionOption {
	return options.NoError(func(s *Session) {
		s.id = id
	})
}

// WithStartTime overrides the session epoch. Useful for replaying captured
// data with its original timebase.
func WithStartTime(start time.Time) SessionOption {
	return options.NoError(func(s *Session) {
		s.start = start
	})
}

// NewSession creates a Session with a fresh UUID and the current time as
// epoch.
func NewSession(opts ...SessionOption) (*Session, error) {
	session := &Session{
		id:     uuid.New(),
		start:  time.Now(),
		logger: zerolog.Nop(),
	}

	if err := options.Apply(session, opts...); err != nil {
		return nil, err
	}

	session.logger = session.logger.With().Str("session_id", session.id.String()).Logger()

	return session, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start returns the session epoch.
func (s *Session) Start() time.Time {
	return s.start
}

// Offset converts a wall-clock time to the session's offset timestamp.
// Times before the epoch clamp to zero.
func (s *Session) Offset(t time.Time) uint64 {
	d := t.Sub(s.start)
	if d < 0 {
		return 0
	}

	return uint64(d.Milliseconds())
}

// Now returns the current offset timestamp.
func (s *Session) Now() uint64 {
	return s.Offset(time.Now())
}

// Close marks the session closed. Collectors reject appends afterwards;
// buffered records remain flushable so a final upload can drain them.
func (s *Session) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.logger.Info().Msg("session closed")
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed.Load()
}

func (s *Session) log() *zerolog.Logger {
	return &s.logger
}
