// Package storage implements the adaptive counter array backing a histogram.
//
// A Storage holds one counter per bin. Counters start unallocated and are
// lazily created as 8-bit unsigned integers on the first increment. When a
// counter would overflow its current width, the whole array is promoted to
// the next wider width (8 → 16 → 32 → 64 bit) with every value copied
// verbatim. The first weighted increment switches the array to the terminal
// weighted representation: a float64 value sum and a float64 sum of squares
// per bin, which together support variance estimation.
//
// Value and Variance decode uniformly regardless of the internal width; in
// the integer states the variance of a counter equals its value (Poisson
// assumption).
//
// Every promotion or conversion builds the replacement lanes completely
// before swapping them in, so a failed allocation can never leave a
// partially-written buffer observable.
//
// Storage is not safe for concurrent use; see the nhist package docs.
package storage

import (
	"fmt"
	"math"

	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/format"
)

// Storage is a flat counter array with automatic width promotion.
//
// The zero value is unusable; create instances with New.
type Storage struct {
	count int
	width format.WidthType

	u8  []uint8
	u16 []uint16
	u32 []uint32
	u64 []uint64

	// Weighted lanes: value sum and sum of squares, allocated together.
	sum []float64
	sos []float64
}

// New creates a Storage with n bins in the uninitialized state.
// No counter memory is allocated until the first increment.
func New(n int) *Storage {
	return &Storage{count: n, width: format.WidthNone}
}

// Len returns the number of bins.
func (s *Storage) Len() int {
	return s.count
}

// Width returns the current width state.
func (s *Storage) Width() format.WidthType {
	return s.width
}

// Reset discards all counters and resizes the storage to n bins in the
// uninitialized state.
func (s *Storage) Reset(n int) {
	s.count = n
	s.width = format.WidthNone
	s.u8, s.u16, s.u32, s.u64 = nil, nil, nil, nil
	s.sum, s.sos = nil, nil
}

// Clear zeroes every counter in place without changing the width or count.
func (s *Storage) Clear() {
	switch s.width {
	case format.WidthUint8:
		clear(s.u8)
	case format.WidthUint16:
		clear(s.u16)
	case format.WidthUint32:
		clear(s.u32)
	case format.WidthUint64:
		clear(s.u64)
	case format.WidthWeighted:
		clear(s.sum)
		clear(s.sos)
	case format.WidthNone:
	}
}

// ResetWidth discards all counters and resizes the storage to n zeroed bins
// at the given width. It is used by the growth migration and the blob
// decoder, which know the target representation up front.
func (s *Storage) ResetWidth(n int, width format.WidthType) {
	s.Reset(n)
	s.width = width
	switch width {
	case format.WidthUint8:
		s.u8 = make([]uint8, n)
	case format.WidthUint16:
		s.u16 = make([]uint16, n)
	case format.WidthUint32:
		s.u32 = make([]uint32, n)
	case format.WidthUint64:
		s.u64 = make([]uint64, n)
	case format.WidthWeighted:
		s.sum = make([]float64, n)
		s.sos = make([]float64, n)
	case format.WidthNone:
	}
}

// Increase adds one unweighted count to bin i, lazily allocating 8-bit
// counters and promoting the width when the counter is at its maximum.
func (s *Storage) Increase(i int) {
	switch s.width {
	case format.WidthNone:
		s.ResetWidth(s.count, format.WidthUint8)
		s.u8[i] = 1
	case format.WidthUint8:
		if s.u8[i] == math.MaxUint8 {
			s.promote()
			s.Increase(i)

			return
		}
		s.u8[i]++
	case format.WidthUint16:
		if s.u16[i] == math.MaxUint16 {
			s.promote()
			s.Increase(i)

			return
		}
		s.u16[i]++
	case format.WidthUint32:
		if s.u32[i] == math.MaxUint32 {
			s.promote()
			s.Increase(i)

			return
		}
		s.u32[i]++
	case format.WidthUint64:
		if s.u64[i] == math.MaxUint64 {
			s.promote()
			s.Increase(i)

			return
		}
		s.u64[i]++
	case format.WidthWeighted:
		// Unweighted increments behave as weight 1 once weighted.
		s.sum[i]++
		s.sos[i]++
	}
}

// IncreaseWeighted adds a weighted count to bin i, switching the storage to
// the terminal weighted representation on first use.
func (s *Storage) IncreaseWeighted(i int, w float64) {
	if s.width != format.WidthWeighted {
		s.convertWeighted()
	}
	s.sum[i] += w
	s.sos[i] += w * w
}

// Observe accumulates one sample component x with weight w into bin i:
// the value sum gains w*x and the sum of squares gains w*x*x. Like
// IncreaseWeighted it switches the storage to the weighted representation.
func (s *Storage) Observe(i int, w, x float64) {
	if s.width != format.WidthWeighted {
		s.convertWeighted()
	}
	s.sum[i] += w * x
	s.sos[i] += w * x * x
}

// Value returns the decoded count of bin i, independent of the internal
// width. Uninitialized storage reads as zero.
func (s *Storage) Value(i int) float64 {
	if s.width == format.WidthWeighted {
		return s.sum[i]
	}
	if s.width == format.WidthNone {
		return 0
	}

	return float64(s.IntAt(i))
}

// Variance returns the variance estimate of bin i. In the integer states it
// equals Value(i); in the weighted state it is the accumulated sum of
// squares.
func (s *Storage) Variance(i int) float64 {
	if s.width == format.WidthWeighted {
		return s.sos[i]
	}

	return s.Value(i)
}

// IntAt returns the raw integer counter of bin i. It panics in the weighted
// state; callers must check Width first.
func (s *Storage) IntAt(i int) uint64 {
	switch s.width {
	case format.WidthUint8:
		return uint64(s.u8[i])
	case format.WidthUint16:
		return uint64(s.u16[i])
	case format.WidthUint32:
		return uint64(s.u32[i])
	case format.WidthUint64:
		return s.u64[i]
	case format.WidthNone:
		return 0
	default:
		panic("storage: IntAt on weighted storage")
	}
}

// SetIntAt stores a raw integer counter into bin i at the current width.
// The value must fit; it is used by the blob decoder which controls the
// width via ResetWidth.
func (s *Storage) SetIntAt(i int, v uint64) {
	switch s.width {
	case format.WidthUint8:
		s.u8[i] = uint8(v)
	case format.WidthUint16:
		s.u16[i] = uint16(v)
	case format.WidthUint32:
		s.u32[i] = uint32(v)
	case format.WidthUint64:
		s.u64[i] = v
	default:
		panic("storage: SetIntAt on non-integer storage")
	}
}

// WeightedAt returns the weighted accumulator of bin i. It panics outside
// the weighted state.
func (s *Storage) WeightedAt(i int) (sum, sos float64) {
	if s.width != format.WidthWeighted {
		panic("storage: WeightedAt on non-weighted storage")
	}

	return s.sum[i], s.sos[i]
}

// SetWeightedAt stores the weighted accumulator of bin i. It panics outside
// the weighted state.
func (s *Storage) SetWeightedAt(i int, sum, sos float64) {
	if s.width != format.WidthWeighted {
		panic("storage: SetWeightedAt on non-weighted storage")
	}
	s.sum[i] = sum
	s.sos[i] = sos
}

// Add merges other into s element-wise, promoting the width as needed so no
// count is lost. Both storages must have the same bin count; the check runs
// before either operand is touched.
func (s *Storage) Add(other *Storage) error {
	if s.count != other.count {
		return fmt.Errorf("%w: %d != %d", errs.ErrStorageSizeMismatch, s.count, other.count)
	}
	if other.width == format.WidthNone {
		return nil
	}

	if s.width == format.WidthWeighted || other.width == format.WidthWeighted {
		if s.width != format.WidthWeighted {
			s.convertWeighted()
		}
		for i := 0; i < s.count; i++ {
			s.sum[i] += other.Value(i)
			s.sos[i] += other.Variance(i)
		}

		return nil
	}

	for i := 0; i < s.count; i++ {
		if n := other.IntAt(i); n > 0 {
			s.addCount(i, n)
		}
	}

	return nil
}

// Equal reports whether both storages decode to the same counts and
// variances bin for bin. Equality is logical: the internal width does not
// participate, since promotion is invisible to callers.
func (s *Storage) Equal(other *Storage) bool {
	if s.count != other.count {
		return false
	}
	for i := 0; i < s.count; i++ {
		if s.Value(i) != other.Value(i) || s.Variance(i) != other.Variance(i) {
			return false
		}
	}

	return true
}

// Remap builds a new storage with n bins at the current width and copies
// every bin i of s into bin target(i) of the result. It is the migration
// primitive used when an axis grows: the index arithmetic lives with the
// caller, the representation stays here.
func (s *Storage) Remap(n int, target func(i int) int) *Storage {
	ns := New(n)
	if s.width == format.WidthNone {
		return ns
	}

	ns.ResetWidth(n, s.width)
	for i := 0; i < s.count; i++ {
		j := target(i)
		switch s.width {
		case format.WidthUint8:
			ns.u8[j] = s.u8[i]
		case format.WidthUint16:
			ns.u16[j] = s.u16[i]
		case format.WidthUint32:
			ns.u32[j] = s.u32[i]
		case format.WidthUint64:
			ns.u64[j] = s.u64[i]
		case format.WidthWeighted:
			ns.sum[j] = s.sum[i]
			ns.sos[j] = s.sos[i]
		case format.WidthNone:
		}
	}

	return ns
}

// Clone returns a deep copy of s.
func (s *Storage) Clone() *Storage {
	return s.Remap(s.count, func(i int) int { return i })
}

// maxCount returns the largest value representable at the current integer
// width.
func (s *Storage) maxCount() uint64 {
	switch s.width {
	case format.WidthUint8:
		return math.MaxUint8
	case format.WidthUint16:
		return math.MaxUint16
	case format.WidthUint32:
		return math.MaxUint32
	case format.WidthUint64:
		return math.MaxUint64
	default:
		return 0
	}
}

// addCount adds n to the integer counter of bin i, promoting until it fits.
func (s *Storage) addCount(i int, n uint64) {
	if s.width == format.WidthNone {
		s.ResetWidth(s.count, format.WidthUint8)
	}
	for s.width != format.WidthWeighted && s.maxCount()-s.IntAt(i) < n {
		s.promote()
	}
	if s.width == format.WidthWeighted {
		// Only reachable when a uint64 counter itself would overflow.
		s.sum[i] += float64(n)
		s.sos[i] += float64(n)

		return
	}
	s.SetIntAt(i, s.IntAt(i)+n)
}

// promote moves the storage to the next wider integer state, copying every
// value verbatim. The new lane is fully built before the swap.
func (s *Storage) promote() {
	next := s.width.Next()
	if next == format.WidthWeighted {
		s.convertWeighted()

		return
	}

	switch next {
	case format.WidthUint16:
		lane := make([]uint16, s.count)
		for i, v := range s.u8 {
			lane[i] = uint16(v)
		}
		s.u16, s.u8 = lane, nil
	case format.WidthUint32:
		lane := make([]uint32, s.count)
		for i, v := range s.u16 {
			lane[i] = uint32(v)
		}
		s.u32, s.u16 = lane, nil
	case format.WidthUint64:
		lane := make([]uint64, s.count)
		for i, v := range s.u32 {
			lane[i] = uint64(v)
		}
		s.u64, s.u32 = lane, nil
	default:
	}
	s.width = next
}

// convertWeighted switches the storage to the terminal weighted state,
// seeding each bin with (sum=value, sos=value) per the Poisson assumption.
// Both lanes are fully built before the swap.
func (s *Storage) convertWeighted() {
	sum := make([]float64, s.count)
	sos := make([]float64, s.count)
	if s.width != format.WidthNone {
		for i := 0; i < s.count; i++ {
			v := float64(s.IntAt(i))
			sum[i] = v
			sos[i] = v
		}
	}

	s.sum, s.sos = sum, sos
	s.u8, s.u16, s.u32, s.u64 = nil, nil, nil, nil
	s.width = format.WidthWeighted
}
