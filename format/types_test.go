package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidthTypeElemSize(t *testing.T) {
	tests := []struct {
		width WidthType
		size  int
	}{
		{WidthNone, 0},
		{WidthUint8, 1},
		{WidthUint16, 2},
		{WidthUint32, 4},
		{WidthUint64, 8},
		{WidthWeighted, 16},
	}
	for _, tt := range tests {
		t.Run(tt.width.String(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.width.ElemSize())
		})
	}
}

func TestWidthTypeNext(t *testing.T) {
	assert.Equal(t, WidthUint8, WidthNone.Next())
	assert.Equal(t, WidthUint16, WidthUint8.Next())
	assert.Equal(t, WidthUint32, WidthUint16.Next())
	assert.Equal(t, WidthUint64, WidthUint32.Next())
	assert.Equal(t, WidthWeighted, WidthUint64.Next())
	// Weighted is terminal.
	assert.Equal(t, WidthWeighted, WidthWeighted.Next())
}

func TestTypeStrings(t *testing.T) {
	assert.Equal(t, "Weighted", WidthWeighted.String())
	assert.Equal(t, "Unknown", WidthType(0x7F).String())
	assert.Equal(t, "Zstd", CompressionZstd.String())
	assert.Equal(t, "Unknown", CompressionType(0x7F).String())
}
