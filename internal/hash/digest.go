// Package hash provides the payload digest used by the upload client.
package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest computes the xxHash64 of a packet body.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DigestHex returns the xxHash64 of a packet body as a 16-digit zero-padded
// hex string, the form carried in the X-Payload-Digest header.
func DigestHex(data []byte) string {
	hex := strconv.FormatUint(Digest(data), 16)
	for len(hex) < 16 {
		hex = "0" + hex
	}

	return hex
}
