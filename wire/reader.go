package wire

import (
	"fmt"
	"math"

	"github.com/playlytic/logstream/endian"
	"github.com/playlytic/logstream/errs"
)

// Reader consumes fixed-width fields and length-prefixed payloads from a
// packet buffer with bounds checking on every read.
//
// All read errors wrap errs.ErrTruncated; a packet that ends mid-field is
// malformed by definition. The reader never copies except for payloads,
// which are returned as fresh slices so decoded records do not alias the
// packet buffer.
type Reader struct {
	data   []byte
	off    int
	engine endian.Engine
}

// NewReader creates a Reader over data starting at offset.
func NewReader(data []byte, offset int, engine endian.Engine) *Reader {
	return &Reader{data: data, off: offset, engine: engine}
}

func (r *Reader) need(n int, field string) error {
	if len(r.data)-r.off < n {
		return fmt.Errorf("%w: need %d bytes for %s at offset %d, have %d",
			errs.ErrTruncated, n, field, r.off, len(r.data)-r.off)
	}

	return nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8(field string) (uint8, error) {
	if err := r.need(1, field); err != nil {
		return 0, err
	}

	v := r.data[r.off]
	r.off++

	return v, nil
}

// Uint32 reads a 4-byte unsigned integer.
func (r *Reader) Uint32(field string) (uint32, error) {
	if err := r.need(4, field); err != nil {
		return 0, err
	}

	v := r.engine.Uint32(r.data[r.off:])
	r.off += 4

	return v, nil
}

// Uint64 reads an 8-byte unsigned integer.
func (r *Reader) Uint64(field string) (uint64, error) {
	if err := r.need(8, field); err != nil {
		return 0, err
	}

	v := r.engine.Uint64(r.data[r.off:])
	r.off += 8

	return v, nil
}

// Int32 reads a 4-byte signed integer.
func (r *Reader) Int32(field string) (int32, error) {
	v, err := r.Uint32(field)

	return int32(v), err
}

// Float32 reads a 4-byte IEEE 754 float.
func (r *Reader) Float32(field string) (float32, error) {
	v, err := r.Uint32(field)

	return math.Float32frombits(v), err
}

// Bytes32 reads a uint32 length prefix and the payload it announces.
// A zero length yields nil, matching the encode-side "absent" convention.
func (r *Reader) Bytes32(field string) ([]byte, error) {
	length, err := r.Uint32(field + " length")
	if err != nil {
		return nil, err
	}

	if length == 0 {
		return nil, nil
	}

	if err := r.need(int(length), field); err != nil {
		return nil, err
	}

	payload := make([]byte, length)
	copy(payload, r.data[r.off:])
	r.off += int(length)

	return payload, nil
}

// String32 reads a uint32 length prefix and the UTF-8 string it announces.
func (r *Reader) String32(field string) (string, error) {
	payload, err := r.Bytes32(field)

	return string(payload), err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset returns the current read offset.
func (r *Reader) Offset() int {
	return r.off
}

// ExpectEOF returns an error when unread bytes remain. Decoders call it
// after the last record; trailing bytes mean the record count lied.
func (r *Reader) ExpectEOF() error {
	if r.Remaining() != 0 {
		return fmt.Errorf("%w: %d bytes", errs.ErrTrailingBytes, r.Remaining())
	}

	return nil
}
