package axis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nhist/errs"
)

func TestNewRegular(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := NewRegular(10, 0.0, 1.0)
		require.NoError(t, err)
		require.Equal(t, 10, a.Size())
		require.Equal(t, 12, a.Extent())
		require.Equal(t, 0.0, a.Min())
		require.Equal(t, 1.0, a.Max())
		require.True(t, a.Options().Has(Underflow|Overflow))
	})

	t.Run("without underflow", func(t *testing.T) {
		a, err := NewRegular(10, 0.0, 1.0, WithoutUnderflow())
		require.NoError(t, err)
		require.Equal(t, 11, a.Extent())
		require.False(t, a.Options().Has(Underflow))
	})

	t.Run("without flow bins", func(t *testing.T) {
		a, err := NewRegular(10, 0.0, 1.0, WithoutUnderflow(), WithoutOverflow())
		require.NoError(t, err)
		require.Equal(t, 10, a.Extent())
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewRegular(0, 0.0, 1.0)
		require.ErrorIs(t, err, errs.ErrInvalidAxisConfig)

		_, err = NewRegular(10, 1.0, 1.0)
		require.ErrorIs(t, err, errs.ErrInvalidAxisConfig)

		_, err = NewRegular(10, 0.0, math.Inf(1))
		require.ErrorIs(t, err, errs.ErrInvalidAxisConfig)

		_, err = NewRegular(10, math.NaN(), 1.0)
		require.ErrorIs(t, err, errs.ErrInvalidAxisConfig)
	})

	t.Run("growth not supported", func(t *testing.T) {
		_, err := NewRegular(10, 0.0, 1.0, WithGrowth())
		require.ErrorIs(t, err, errs.ErrInvalidAxisConfig)
	})
}

func TestRegularIndex(t *testing.T) {
	a, err := NewRegular(10, 0.0, 1.0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value any
		index int
	}{
		{"below range", -0.1, -1},
		{"lower edge", 0.0, 0},
		{"first bin", 0.05, 0},
		{"middle bin", 0.55, 5},
		{"last bin", 0.95, 9},
		{"just below upper edge", math.Nextafter(1.0, 0), 9},
		{"upper edge", 1.0, 10},
		{"above range", 2.0, 10},
		{"nan", math.NaN(), 10},
		{"integer value", 0, 0},
		{"float32 value", float32(0.25), 2},
		{"non-numeric", "oops", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.index, a.Index(tt.value))
		})
	}
}

func TestRegularFingerprint(t *testing.T) {
	a1, err := NewRegular(10, 0.0, 1.0)
	require.NoError(t, err)
	a2, err := NewRegular(10, 0.0, 1.0)
	require.NoError(t, err)
	require.Equal(t, a1.Fingerprint(), a2.Fingerprint())

	b, err := NewRegular(10, 0.0, 2.0)
	require.NoError(t, err)
	require.NotEqual(t, a1.Fingerprint(), b.Fingerprint())

	c, err := NewRegular(10, 0.0, 1.0, WithoutOverflow())
	require.NoError(t, err)
	require.NotEqual(t, a1.Fingerprint(), c.Fingerprint())
}
