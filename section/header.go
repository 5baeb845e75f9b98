// Package section defines the fixed-size persisted header of a storage blob.
//
// A storage blob starts with a 32-byte header followed by the payload. The
// header records everything the decoder needs before touching the payload:
// the magic number, byte order, width state, compression, zero-suppression
// flag, bin count, axis-set fingerprint, payload size and payload checksum.
package section

import (
	"github.com/arloliu/nhist/endian"
	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/format"
)

// StorageFlag represents the packed flag field of the storage header.
type StorageFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the zero-suppression flag, 1 means the payload is the
	// run-length form, 0 means raw fixed-width elements.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the blob format:
	//   - 0xEC10: histogram storage blob format v1
	Options uint16

	// Width is the width selector of the encoded counters.
	Width format.WidthType
	// Compression is the compression applied to the payload.
	Compression format.CompressionType
}

// NewStorageFlag creates a StorageFlag with default settings: little-endian,
// raw payload, no compression.
func NewStorageFlag() StorageFlag {
	flag := StorageFlag{
		Options:     MagicHistV1Opt,
		Width:       format.WidthNone,
		Compression: format.CompressionNone,
	}
	flag.WithLittleEndian()

	return flag
}

// IsZeroSuppressed returns whether the payload is the run-length form.
func (f StorageFlag) IsZeroSuppressed() bool {
	return (f.Options & ZeroSuppressedMask) != 0
}

// SetZeroSuppressed records which payload form was written.
func (f *StorageFlag) SetZeroSuppressed(enabled bool) {
	if enabled {
		f.Options |= ZeroSuppressedMask
	} else {
		f.Options &^= ZeroSuppressedMask
	}
}

// IsLittleEndian returns whether the payload is little-endian.
func (f StorageFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the payload is big-endian.
func (f StorageFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *StorageFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *StorageFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f StorageFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber returns whether the flag carries the v1 magic number.
func (f StorageFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicHistV1Opt
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f StorageFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Validate checks the magic number and the width and compression selectors.
func (f StorageFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}
	if f.Width > format.WidthWeighted {
		return errs.ErrInvalidHeaderFlags
	}
	switch f.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// StorageHeader represents the fixed-size header section at the start of a
// storage blob.
type StorageHeader struct {
	// BinCount is the number of bins encoded in the payload.
	BinCount uint64 // byte offset 4-11
	// AxesID is the fingerprint of the axis configuration the storage
	// belongs to, or zero when the storage was encoded standalone.
	AxesID uint64 // byte offset 12-19
	// PayloadSize is the byte length of the (possibly compressed) payload
	// following the header.
	PayloadSize uint32 // byte offset 20-23
	// Checksum is the CRC32-C checksum of the payload as written.
	Checksum uint32 // byte offset 24-27

	// Flag is the packed field for options, width, compression and the
	// magic number.
	Flag StorageFlag // byte offset 0-3
}

// NewStorageHeader creates a StorageHeader with default flags. The counts,
// sizes and checksum are filled in by the encoder.
func NewStorageHeader() *StorageHeader {
	return &StorageHeader{Flag: NewStorageFlag()}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is too short, or flag validation
//     errors
func (h *StorageHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The Options field itself is always little-endian; it carries the bit
	// that decides the byte order of everything after it.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Width = format.WidthType(data[2])
	h.Flag.Compression = format.CompressionType(data[3])

	engine := h.Flag.GetEndianEngine()
	h.BinCount = engine.Uint64(data[4:12])
	h.AxesID = engine.Uint64(data[12:20])
	h.PayloadSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint32(data[24:28])

	return h.Flag.Validate()
}

// Bytes serializes the StorageHeader into a byte slice.
func (h *StorageHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = byte(h.Flag.Width)
	b[3] = byte(h.Flag.Compression)

	engine := h.Flag.GetEndianEngine()
	engine.PutUint64(b[4:12], h.BinCount)
	engine.PutUint64(b[12:20], h.AxesID)
	engine.PutUint32(b[20:24], h.PayloadSize)
	engine.PutUint32(b[24:28], h.Checksum)
	// bytes 28-31 reserved, zero

	return b
}

// ParseStorageHeader parses a StorageHeader from a byte slice.
func ParseStorageHeader(data []byte) (StorageHeader, error) {
	var h StorageHeader
	if err := h.Parse(data); err != nil {
		return StorageHeader{}, err
	}

	return h, nil
}
