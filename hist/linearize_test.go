package hist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalIndexFold(t *testing.T) {
	t.Run("row major accumulation", func(t *testing.T) {
		// (1, 2, 3) over extents (4, 5, 6) → 1 + 2*4 + 3*20.
		idx := newOptionalIndex()
		idx.fold(1, 4)
		idx.fold(2, 5)
		idx.fold(3, 6)
		require.True(t, idx.valid())
		require.Equal(t, 69, idx.offset)
	})

	t.Run("invalidity is monotonic", func(t *testing.T) {
		// An out-of-range index latches invalid no matter how many
		// in-range axes follow.
		idx := newOptionalIndex()
		idx.fold(4, 4)
		require.False(t, idx.valid())
		idx.fold(0, 5)
		idx.fold(2, 6)
		require.False(t, idx.valid())
	})

	t.Run("negative index is invalid", func(t *testing.T) {
		idx := newOptionalIndex()
		idx.fold(-1, 4)
		require.False(t, idx.valid())
	})
}
