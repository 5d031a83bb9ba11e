package compress

// ZstdCodec compresses packet bodies with Zstandard. It trades some CPU for
// the best ratio of the built-in codecs, which suits sessions uploading
// over constrained links.
//
// Two implementations exist behind build tags: a cgo binding when cgo is
// available (zstd_cgo.go) and a pure-Go fallback otherwise (zstd_pure.go).
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
