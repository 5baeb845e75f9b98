package format

type (
	WidthType       uint8
	CompressionType uint8
)

const (
	// WidthNone represents uninitialized storage with no allocated counters.
	WidthNone WidthType = 0x0
	// WidthUint8 represents 8-bit unsigned integer counters.
	WidthUint8 WidthType = 0x1
	// WidthUint16 represents 16-bit unsigned integer counters.
	WidthUint16 WidthType = 0x2
	// WidthUint32 represents 32-bit unsigned integer counters.
	WidthUint32 WidthType = 0x3
	// WidthUint64 represents 64-bit unsigned integer counters.
	WidthUint64 WidthType = 0x4
	// WidthWeighted represents weighted accumulators holding a float64
	// value sum and a float64 sum of squares per bin. Terminal state.
	WidthWeighted WidthType = 0x5

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// ElemSize returns the encoded size of one bin in bytes, or 0 for WidthNone.
func (w WidthType) ElemSize() int {
	switch w {
	case WidthUint8:
		return 1
	case WidthUint16:
		return 2
	case WidthUint32:
		return 4
	case WidthUint64:
		return 8
	case WidthWeighted:
		return 16
	default:
		return 0
	}
}

// Next returns the next wider state in the promotion ladder. It returns
// WidthWeighted after WidthUint64 since the weighted state is the only
// representation wider than 64-bit counters.
func (w WidthType) Next() WidthType {
	switch w {
	case WidthNone:
		return WidthUint8
	case WidthUint8:
		return WidthUint16
	case WidthUint16:
		return WidthUint32
	case WidthUint32:
		return WidthUint64
	default:
		return WidthWeighted
	}
}

func (w WidthType) String() string {
	switch w {
	case WidthNone:
		return "None"
	case WidthUint8:
		return "Uint8"
	case WidthUint16:
		return "Uint16"
	case WidthUint32:
		return "Uint32"
	case WidthUint64:
		return "Uint64"
	case WidthWeighted:
		return "Weighted"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
