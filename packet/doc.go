// Package packet implements the logstream binary packet formats: encoders
// and decoders for the position stream (LSLP), the field object stream
// (LSFO) and the general event stream (LSEV).
//
// Encoding is a pure transform from a record batch to one immutable byte
// buffer. Encoders hold no state between calls, perform no I/O and never
// fail: oversized payloads are clamped to their byte caps and reported as
// Warning values alongside the output. Callers that want bounded encode
// latency should bound batch size before calling; there is no cancellation.
//
// Decoding is strict. Unknown magics, unsupported versions, truncated
// buffers, out-of-range string table indices and unknown event type bytes
// are all rejected with sentinel errors from the errs package.
//
// All multi-byte fields are little-endian. Batches are independent: a
// packet is self-contained and carries everything needed to decode it.
package packet
