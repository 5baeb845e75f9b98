package blob

import (
	"fmt"
	"hash/crc32"

	"github.com/arloliu/nhist/compress"
	"github.com/arloliu/nhist/format"
	"github.com/arloliu/nhist/internal/options"
	"github.com/arloliu/nhist/internal/pool"
	"github.com/arloliu/nhist/section"
	"github.com/arloliu/nhist/storage"
)

// castagnoli is the CRC32-C polynomial table used for payload checksums.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

type encodeConfig struct {
	compression format.CompressionType
	bigEndian   bool
	axesID      uint64
}

// EncodeOption configures the blob encoder.
type EncodeOption = options.Option[*encodeConfig]

// WithCompression sets the payload compression codec.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *encodeConfig) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = c
		default:
			return fmt.Errorf("invalid payload compression: %d", c)
		}

		return nil
	})
}

// WithLittleEndian encodes the blob in little-endian byte order.
// This is the default.
func WithLittleEndian() EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.bigEndian = false
	})
}

// WithBigEndian encodes the blob in big-endian byte order.
func WithBigEndian() EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.bigEndian = true
	})
}

// WithAxesID records the axis-set fingerprint the storage belongs to, so a
// later decode can refuse a mismatched histogram. Zero (the default) marks a
// standalone storage blob.
func WithAxesID(id uint64) EncodeOption {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.axesID = id
	})
}

// Encode serializes s into a self-describing blob: a 32-byte header followed
// by the payload. The payload is written zero-suppressed when that is
// smaller than the raw form, then run through the configured compression
// codec, and checksummed with CRC32-C.
func Encode(s *storage.Storage, opts ...EncodeOption) ([]byte, error) {
	cfg := &encodeConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header := section.NewStorageHeader()
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.Width = s.Width()
	header.Flag.Compression = cfg.compression
	header.BinCount = uint64(s.Len())
	header.AxesID = cfg.axesID

	engine := header.Flag.GetEndianEngine()

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	if s.Width() != format.WidthNone {
		if encodeSuppressed(s, engine, buf) {
			header.Flag.SetZeroSuppressed(true)
		} else {
			buf.Reset()
			encodeRaw(s, engine, buf)
		}
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	header.PayloadSize = uint32(len(payload))
	header.Checksum = crc32.Checksum(payload, castagnoli)

	out := make([]byte, 0, section.HeaderSize+len(payload))
	out = append(out, header.Bytes()...)
	out = append(out, payload...)

	return out, nil
}
