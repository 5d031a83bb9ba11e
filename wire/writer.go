package wire

import (
	"math"

	"github.com/playlytic/logstream/endian"
)

// Writer appends fixed-width fields and length-prefixed payloads to a byte
// buffer in the packet byte order.
//
// The writer never fails; callers pre-size it with the estimated packet size
// so a single encode performs at most one allocation. It is not safe for
// concurrent use.
type Writer struct {
	buf    []byte
	engine endian.Engine
}

// NewWriter creates a Writer with the given initial capacity.
func NewWriter(capacity int, engine endian.Engine) *Writer {
	return &Writer{
		buf:    make([]byte, 0, capacity),
		engine: engine,
	}
}

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Uint32 appends a 4-byte unsigned integer.
func (w *Writer) Uint32(v uint32) {
	w.buf = w.engine.AppendUint32(w.buf, v)
}

// Uint64 appends an 8-byte unsigned integer.
func (w *Writer) Uint64(v uint64) {
	w.buf = w.engine.AppendUint64(w.buf, v)
}

// Int32 appends a 4-byte signed integer in two's complement.
func (w *Writer) Int32(v int32) {
	w.buf = w.engine.AppendUint32(w.buf, uint32(v))
}

// Float32 appends a 4-byte IEEE 754 float.
func (w *Writer) Float32(v float32) {
	w.buf = w.engine.AppendUint32(w.buf, math.Float32bits(v))
}

// WriteHeader appends the encoded packet header.
func (w *Writer) WriteHeader(h Header) {
	w.buf = h.AppendTo(w.buf, w.engine)
}

// Raw appends bytes with no length prefix.
func (w *Writer) Raw(data []byte) {
	w.buf = append(w.buf, data...)
}

// Bytes32 appends a uint32 length prefix followed by the payload bytes.
// A nil or empty payload is written as length zero; decoders treat length
// zero as "absent".
func (w *Writer) Bytes32(data []byte) {
	w.Uint32(uint32(len(data))) //nolint:gosec
	w.buf = append(w.buf, data...)
}

// String32 appends a uint32 length prefix followed by the UTF-8 bytes of s.
func (w *Writer) String32(s string) {
	w.Uint32(uint32(len(s))) //nolint:gosec
	w.buf = append(w.buf, s...)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written buffer. The slice shares memory with the writer;
// callers must not keep writing through the Writer after taking ownership.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Clamp truncates data to at most capBytes and reports whether truncation
// happened. The clamp policy is degrade-don't-fail: an oversized payload
// loses its tail rather than sinking the batch.
func Clamp(data []byte, capBytes int) ([]byte, bool) {
	if len(data) <= capBytes {
		return data, false
	}

	return data[:capBytes], true
}
