// Package endian provides the byte order plumbing for logstream wire formats.
//
// Every logstream packet is little-endian by contract with the ingest
// backend, so most code uses Little() directly. The Engine interface exists
// so the wire-level writers and readers stay testable against both orders
// and so the append-based fast path of encoding/binary is available
// everywhere.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary. It is satisfied by binary.LittleEndian and
// binary.BigEndian, so the standard library orders can be passed anywhere an
// Engine is expected.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine. This is the byte order of every
// logstream packet format.
func Little() Engine {
	return binary.LittleEndian
}

// Big returns the big-endian engine. It exists for symmetry and tests; no
// logstream format uses it.
func Big() Engine {
	return binary.BigEndian
}

// Native reports the byte order of the host.
func Native() binary.ByteOrder {
	// 0x0100 is 256. On a little-endian host the low byte (0x00) sits at the
	// lowest address.
	var probe uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&probe))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittle reports whether the host is little-endian, in which case
// encoding a packet involves no byte swapping.
func IsNativeLittle() bool {
	return Native() == binary.LittleEndian
}
