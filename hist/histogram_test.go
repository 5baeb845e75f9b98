package hist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nhist/axis"
	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/format"
)

func mustRegular(t *testing.T, bins int, min, max float64, opts ...axis.Option) *axis.Regular {
	t.Helper()
	a, err := axis.NewRegular(bins, min, max, opts...)
	require.NoError(t, err)

	return a
}

func mustInteger(t *testing.T, min, max int, opts ...axis.Option) *axis.Integer {
	t.Helper()
	a, err := axis.NewInteger(min, max, opts...)
	require.NoError(t, err)

	return a
}

func TestNewHistogram(t *testing.T) {
	t.Run("requires an axis", func(t *testing.T) {
		_, err := New()
		require.ErrorIs(t, err, errs.ErrAxisRequired)
	})

	t.Run("one dimension", func(t *testing.T) {
		h, err := New(mustRegular(t, 3, 0, 3))
		require.NoError(t, err)
		require.Equal(t, 1, h.Rank())
		// 3 regular bins plus underflow and overflow.
		require.Equal(t, 5, h.NumBins())
	})

	t.Run("two dimensions", func(t *testing.T) {
		h, err := New(mustRegular(t, 3, 0, 3), mustInteger(t, 0, 2))
		require.NoError(t, err)
		require.Equal(t, 2, h.Rank())
		require.Equal(t, 5*4, h.NumBins())
	})

	t.Run("axis accessor", func(t *testing.T) {
		ax := mustRegular(t, 3, 0, 3)
		h, err := New(ax)
		require.NoError(t, err)

		got, err := h.AxisAt(0)
		require.NoError(t, err)
		require.Same(t, axis.Axis(ax), got)

		_, err = h.AxisAt(1)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})
}

func TestFillOneDimension(t *testing.T) {
	h, err := New(mustRegular(t, 3, 0, 3))
	require.NoError(t, err)

	for _, v := range []float64{-1, 0, 1, 2, 3, 1} {
		require.NoError(t, h.Fill(v))
	}

	expect := map[int]float64{-1: 1, 0: 1, 1: 2, 2: 1, 3: 1}
	for idx, want := range expect {
		got, err := h.Value(idx)
		require.NoError(t, err)
		require.Equal(t, want, got, "bin %d", idx)
	}
	require.Equal(t, 6.0, h.Sum())
}

func TestFillDropsOutOfRangeSilently(t *testing.T) {
	h, err := New(mustRegular(t, 3, 0, 3, axis.WithoutUnderflow(), axis.WithoutOverflow()))
	require.NoError(t, err)
	require.Equal(t, 3, h.NumBins())

	require.NoError(t, h.Fill(1.5))
	require.NoError(t, h.Fill(5.0))
	require.NoError(t, h.Fill(-1.0))

	require.Equal(t, 1.0, h.Sum())

	// Strict access to the same out-of-range indices fails loudly.
	_, err = h.At(5)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = h.At(-1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestAtArgumentCount(t *testing.T) {
	h, err := New(mustRegular(t, 3, 0, 3))
	require.NoError(t, err)

	_, err = h.At(0, 1)
	require.ErrorIs(t, err, errs.ErrArgumentCount)
	_, err = h.At()
	require.ErrorIs(t, err, errs.ErrArgumentCount)
}

func TestFillArgumentErrors(t *testing.T) {
	h, err := New(mustRegular(t, 3, 0, 3), mustInteger(t, 0, 2))
	require.NoError(t, err)

	t.Run("too few values", func(t *testing.T) {
		require.ErrorIs(t, h.Fill(1.0), errs.ErrArgumentCount)
	})

	t.Run("too many values", func(t *testing.T) {
		require.ErrorIs(t, h.Fill(1.0, 1, 2.0), errs.ErrArgumentCount)
	})

	t.Run("weight between values", func(t *testing.T) {
		require.ErrorIs(t, h.Fill(1.0, Weight(2), 1), errs.ErrArgumentCount)
	})

	t.Run("duplicate weight", func(t *testing.T) {
		require.ErrorIs(t, h.Fill(Weight(2), 1.0, 1, Weight(3)), errs.ErrArgumentCount)
	})
}

func TestFillWeighted(t *testing.T) {
	h, err := New(mustRegular(t, 1, 0, 1, axis.WithoutUnderflow(), axis.WithoutOverflow()))
	require.NoError(t, err)

	require.NoError(t, h.Fill(0.5, Weight(2)))
	c, err := h.At(0)
	require.NoError(t, err)
	require.Equal(t, 2.0, c.Value)
	require.Equal(t, 4.0, c.Variance)

	// Unweighted fills keep working after the weighted switch.
	require.NoError(t, h.Fill(0.5))
	c, err = h.At(0)
	require.NoError(t, err)
	require.Equal(t, 3.0, c.Value)
	require.Equal(t, 5.0, c.Variance)

	// Weight is recognized at the front as well.
	require.NoError(t, h.Fill(Weight(2), 0.5))
	c, err = h.At(0)
	require.NoError(t, err)
	require.Equal(t, 5.0, c.Value)
}

func TestFillSample(t *testing.T) {
	h, err := New(mustRegular(t, 1, 0, 1, axis.WithoutUnderflow(), axis.WithoutOverflow()))
	require.NoError(t, err)

	require.NoError(t, h.Fill(0.5, Sample{3.0}))
	c, err := h.At(0)
	require.NoError(t, err)
	require.Equal(t, 3.0, c.Value)
	require.Equal(t, 9.0, c.Variance)

	require.NoError(t, h.Fill(0.5, Weight(2), Sample{3.0}))
	c, err = h.At(0)
	require.NoError(t, err)
	require.Equal(t, 9.0, c.Value)
	require.Equal(t, 27.0, c.Variance)
}

func TestFillCompositeForwarding(t *testing.T) {
	// A one-dimensional histogram forwards multiple residual values to its
	// sole axis as one compound value. The regular axis cannot interpret it,
	// so the entry lands in the overflow bin.
	h, err := New(mustRegular(t, 3, 0, 3))
	require.NoError(t, err)

	require.NoError(t, h.Fill(1.0, 2.0))
	got, err := h.Value(3)
	require.NoError(t, err)
	require.Equal(t, 1.0, got)
}

func TestLinearizationIsRowMajor(t *testing.T) {
	a0 := mustRegular(t, 2, 0, 2, axis.WithoutUnderflow(), axis.WithoutOverflow())
	a1 := mustInteger(t, 0, 3, axis.WithoutUnderflow(), axis.WithoutOverflow())
	h, err := New(a0, a1)
	require.NoError(t, err)
	require.Equal(t, 6, h.NumBins())

	// Axis 0 is the fastest-varying dimension of the flat storage.
	require.NoError(t, h.Fill(1.5, 2))
	require.Equal(t, 1.0, h.Storage().Value(1+2*2))

	// Every (i0, i1) pair addresses exactly one bin.
	for i1 := 0; i1 < 3; i1++ {
		for i0 := 0; i0 < 2; i0++ {
			require.NoError(t, h.Fill(float64(i0)+0.5, i1))
			got, err := h.Value(i0, i1)
			require.NoError(t, err)
			want := 1.0
			if i0 == 1 && i1 == 2 {
				want = 2.0
			}
			require.Equal(t, want, got, "bin (%d,%d)", i0, i1)
		}
	}
}

func TestUnderflowShiftPerAxis(t *testing.T) {
	// Axis 0 has no underflow bin, axis 1 has both flow bins; the +1 shift
	// must apply to axis 1 only.
	a0 := mustRegular(t, 2, 0, 2, axis.WithoutUnderflow(), axis.WithoutOverflow())
	a1 := mustInteger(t, 0, 2)
	h, err := New(a0, a1)
	require.NoError(t, err)

	require.NoError(t, h.Fill(0.5, -7))
	got, err := h.Value(0, -1)
	require.NoError(t, err)
	require.Equal(t, 1.0, got)

	// Local (0, -1) is flat offset 0: underflow of axis 1 at bin 0 of axis 0.
	require.Equal(t, 1.0, h.Storage().Value(0))
}

func TestGrowthMigratesAbove(t *testing.T) {
	h, err := New(mustInteger(t, 0, 2, axis.WithGrowth()))
	require.NoError(t, err)
	require.Equal(t, 2, h.NumBins())

	require.NoError(t, h.Fill(0))
	require.NoError(t, h.Fill(1))
	require.NoError(t, h.Fill(5))

	require.Equal(t, 6, h.NumBins())
	require.Equal(t, 3.0, h.Sum())
	for idx, want := range map[int]float64{0: 1, 1: 1, 2: 0, 5: 1} {
		got, err := h.Value(idx)
		require.NoError(t, err)
		require.Equal(t, want, got, "bin %d", idx)
	}
}

func TestGrowthMigratesBelow(t *testing.T) {
	h, err := New(mustInteger(t, 0, 2, axis.WithGrowth()))
	require.NoError(t, err)

	require.NoError(t, h.Fill(0))
	require.NoError(t, h.Fill(1))
	require.NoError(t, h.Fill(-2))

	ax, err := h.AxisAt(0)
	require.NoError(t, err)
	require.Equal(t, -2, ax.(*axis.Integer).Min())
	require.Equal(t, 4, h.NumBins())
	require.Equal(t, 3.0, h.Sum())

	// The old counts moved up by the two inserted bins.
	for idx, want := range map[int]float64{0: 1, 1: 0, 2: 1, 3: 1} {
		got, err := h.Value(idx)
		require.NoError(t, err)
		require.Equal(t, want, got, "bin %d", idx)
	}
}

func TestGrowthTwoDimensions(t *testing.T) {
	cat, err := axis.NewCategory([]string{"a"}, axis.WithGrowth())
	require.NoError(t, err)
	h, err := New(cat, mustInteger(t, 0, 2, axis.WithGrowth()))
	require.NoError(t, err)
	require.Equal(t, 2, h.NumBins())

	require.NoError(t, h.Fill("a", 0))
	require.NoError(t, h.Fill("a", 1))
	// Both axes grow in a single fill.
	require.NoError(t, h.Fill("b", 3))

	require.Equal(t, 2*4, h.NumBins())
	require.Equal(t, 3.0, h.Sum())
	for _, tt := range []struct {
		i0, i1 int
		want   float64
	}{
		{0, 0, 1}, {0, 1, 1}, {1, 3, 1}, {1, 0, 0}, {0, 3, 0},
	} {
		got, err := h.Value(tt.i0, tt.i1)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "bin (%d,%d)", tt.i0, tt.i1)
	}
}

func TestGrowthPreservesWeightedCounts(t *testing.T) {
	h, err := New(mustInteger(t, 0, 2, axis.WithGrowth()))
	require.NoError(t, err)

	require.NoError(t, h.Fill(0, Weight(2.5)))
	require.NoError(t, h.Fill(4))

	require.Equal(t, format.WidthWeighted, h.Storage().Width())
	c, err := h.At(0)
	require.NoError(t, err)
	require.Equal(t, 2.5, c.Value)
	require.Equal(t, 6.25, c.Variance)
	require.Equal(t, 3.5, h.Sum())
}

func TestAddAndEqual(t *testing.T) {
	newPair := func(t *testing.T) (*Histogram, *Histogram) {
		t.Helper()
		h1, err := New(mustRegular(t, 3, 0, 3))
		require.NoError(t, err)
		h2, err := New(mustRegular(t, 3, 0, 3))
		require.NoError(t, err)

		return h1, h2
	}

	t.Run("merge", func(t *testing.T) {
		h1, h2 := newPair(t)
		require.NoError(t, h1.Fill(0.5))
		require.NoError(t, h2.Fill(0.5))
		require.NoError(t, h2.Fill(2.5))

		require.NoError(t, h1.Add(h2))
		got, err := h1.Value(0)
		require.NoError(t, err)
		require.Equal(t, 2.0, got)
		require.Equal(t, 3.0, h1.Sum())
		// The merge source is untouched.
		require.Equal(t, 2.0, h2.Sum())
	})

	t.Run("axes mismatch", func(t *testing.T) {
		h1, err := New(mustRegular(t, 3, 0, 3))
		require.NoError(t, err)
		h2, err := New(mustRegular(t, 3, 0, 6))
		require.NoError(t, err)

		require.ErrorIs(t, h1.Add(h2), errs.ErrAxesMismatch)
		require.Zero(t, h1.Sum())
	})

	t.Run("equal is width-insensitive", func(t *testing.T) {
		h1, h2 := newPair(t)
		require.True(t, h1.Equal(h2))

		require.NoError(t, h1.Fill(0.5))
		require.False(t, h1.Equal(h2))
		require.NoError(t, h2.Fill(0.5))
		require.True(t, h1.Equal(h2))
	})
}

func TestReset(t *testing.T) {
	h, err := New(mustRegular(t, 3, 0, 3))
	require.NoError(t, err)
	require.NoError(t, h.Fill(1.0))

	h.Reset()
	require.Zero(t, h.Sum())
	require.Equal(t, format.WidthNone, h.Storage().Width())
	require.Equal(t, 5, h.NumBins())
}

func TestMarshalUnmarshalBlob(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		h, err := New(mustRegular(t, 3, 0, 3), mustInteger(t, 0, 2))
		require.NoError(t, err)
		require.NoError(t, h.Fill(1.5, 1, Weight(2)))
		require.NoError(t, h.Fill(0.5, 0))

		data, err := h.MarshalBlob()
		require.NoError(t, err)

		h2, err := New(mustRegular(t, 3, 0, 3), mustInteger(t, 0, 2))
		require.NoError(t, err)
		require.NoError(t, h2.UnmarshalBlob(data))
		require.True(t, h.Equal(h2))
	})

	t.Run("fingerprint mismatch", func(t *testing.T) {
		h, err := New(mustRegular(t, 3, 0, 3))
		require.NoError(t, err)
		data, err := h.MarshalBlob()
		require.NoError(t, err)

		other, err := New(mustRegular(t, 3, 0, 6))
		require.NoError(t, err)
		require.ErrorIs(t, other.UnmarshalBlob(data), errs.ErrAxesFingerprintMismatch)
	})

	t.Run("grown axis changes fingerprint", func(t *testing.T) {
		h, err := New(mustInteger(t, 0, 2, axis.WithGrowth()))
		require.NoError(t, err)
		require.NoError(t, h.Fill(5))

		data, err := h.MarshalBlob()
		require.NoError(t, err)

		fresh, err := New(mustInteger(t, 0, 2, axis.WithGrowth()))
		require.NoError(t, err)
		require.ErrorIs(t, fresh.UnmarshalBlob(data), errs.ErrAxesFingerprintMismatch)

		grown, err := New(mustInteger(t, 0, 6, axis.WithGrowth()))
		require.NoError(t, err)
		require.NoError(t, grown.UnmarshalBlob(data))
		require.Equal(t, 1.0, grown.Sum())
		got, err := grown.Value(5)
		require.NoError(t, err)
		require.Equal(t, 1.0, got)
	})
}
