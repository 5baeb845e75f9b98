package compress

// ZstdCompressor provides Zstandard compression for nhist storage payloads.
//
// This compressor is designed for scenarios where compression ratio matters
// more than compression speed, making it a good fit for:
//   - Cold storage and archival of accumulated histograms
//   - Network transmission of merged per-worker histograms
//   - Large dense histograms where zero suppression falls back to raw
//
// Two implementations are provided behind build tags: a cgo binding to
// libzstd (valyala/gozstd) when cgo is available, and a pure-Go fallback
// (klauspost/compress/zstd) otherwise. Both produce interoperable frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
