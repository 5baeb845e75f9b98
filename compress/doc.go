// Package compress provides compression and decompression codecs for nhist
// storage payloads.
//
// Compression is applied at the payload level after zero suppression,
// providing an additional layer of space savings on top of the run-length
// form. A histogram buffer that is dense or weighted often gains little from
// zero suppression alone; a general-purpose codec recovers most of that.
//
// # Overview
//
// nhist applies a two-stage strategy when encoding a storage blob:
//
//  1. Zero suppression: collapses runs of empty bins into run lengths
//  2. Compression: further reduces the payload using a general-purpose codec
//
// The compress package implements the second stage, supporting:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are selected through format.CompressionType and obtained from
// GetCodec or CreateCodec. All built-in codecs are stateless or internally
// pooled and safe for concurrent use.
package compress
