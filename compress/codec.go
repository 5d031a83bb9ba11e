// Package compress provides the transport codecs used by the upload client
// to compress packet bodies before they go over HTTP.
//
// Compression is strictly a transport concern: the logstream wire formats
// are uncompressed by contract with the backend, and the Content-Encoding
// header tells the ingest endpoint which codec to reverse. Telemetry
// packets compress well, since status and metadata JSON repeats key names
// across records.
package compress

import (
	"fmt"

	"github.com/playlytic/logstream/format"
)

// Codec compresses and decompresses packet bodies.
//
// Implementations must be safe for concurrent use; the upload client shares
// one Codec across calls. Returned slices are newly allocated and owned by
// the caller; input slices are never modified.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// ForType returns the built-in Codec for the given compression type.
func ForType(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
