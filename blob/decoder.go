package blob

import (
	"fmt"
	"hash/crc32"
	"math"

	"github.com/arloliu/nhist/compress"
	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/format"
	"github.com/arloliu/nhist/section"
	"github.com/arloliu/nhist/storage"
)

// ParseHeader parses and validates the blob header without touching the
// payload. Callers use it to inspect the bin count and axis-set fingerprint
// before committing to a decode.
func ParseHeader(data []byte) (section.StorageHeader, error) {
	return section.ParseStorageHeader(data)
}

// Decode reconstructs a storage buffer from a blob produced by Encode and
// returns the parsed header so callers can inspect the axis-set fingerprint.
//
// dst is reused in place when its (count, width) shape matches the persisted
// one, otherwise it is reallocated via ResetWidth. On any error dst may be
// left zeroed but is never left with partially-decoded counts visible as
// valid data.
func Decode(data []byte, dst *storage.Storage) (section.StorageHeader, error) {
	header, err := section.ParseStorageHeader(data)
	if err != nil {
		return section.StorageHeader{}, err
	}

	end := section.PayloadOffset + int(header.PayloadSize)
	if len(data) < end {
		return section.StorageHeader{}, fmt.Errorf("%w: payload truncated", errs.ErrInvalidPayload)
	}
	payload := data[section.PayloadOffset:end]

	if crc32.Checksum(payload, castagnoli) != header.Checksum {
		return section.StorageHeader{}, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(header.Flag.Compression)
	if err != nil {
		return section.StorageHeader{}, err
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return section.StorageHeader{}, fmt.Errorf("decompress payload: %w", err)
	}

	// Keep count*elemSize representable before any allocation.
	if header.BinCount > uint64(math.MaxInt/16) {
		return section.StorageHeader{}, fmt.Errorf("%w: bin count %d", errs.ErrInvalidPayload, header.BinCount)
	}
	count := int(header.BinCount)
	width := header.Flag.Width
	if dst.Len() == count && dst.Width() == width {
		dst.Clear()
	} else {
		dst.ResetWidth(count, width)
	}

	if width == format.WidthNone {
		if len(raw) != 0 {
			return section.StorageHeader{}, fmt.Errorf("%w: unexpected payload for uninitialized storage", errs.ErrInvalidPayload)
		}

		return header, nil
	}

	engine := header.Flag.GetEndianEngine()
	if header.Flag.IsZeroSuppressed() {
		err = decodeSuppressed(dst, engine, raw)
	} else {
		err = decodeRaw(dst, engine, raw)
	}
	if err != nil {
		dst.Clear()

		return section.StorageHeader{}, err
	}

	return header, nil
}
