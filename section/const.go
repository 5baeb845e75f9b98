package section

const (
	// Bit masks for the packed Options field
	ZeroSuppressedMask = 0x0001 // Mask for zero-suppression bit (bit 0)
	EndiannessMask     = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask   = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask    = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicHistV1Opt is the version 1 magic number for the histogram
	// storage blob format (bits 4-15 of the Options field).
	MagicHistV1Opt = 0xEC10
)

// offsets and sizes in the storage blob
const (
	HeaderSize    = 32         // fixed header size in bytes
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
