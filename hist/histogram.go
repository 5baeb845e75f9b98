// Package hist implements the multidimensional aggregation engine: a set of
// axes, an adaptive counter storage, and the row-major linearization that
// ties them together.
//
// Each axis maps one coordinate of a fill to a local bin index; the engine
// folds the local indices into a single flat offset and increments that bin.
// Axes that reserve an underflow bin get their local indices shifted by +1,
// so the reserved bin occupies storage slot 0 of that dimension. Growing
// axes extend their range during a fill; the engine then migrates the
// storage so every existing count keeps its bin.
package hist

import (
	"fmt"
	"slices"

	"github.com/arloliu/nhist/axis"
	"github.com/arloliu/nhist/blob"
	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/storage"
)

// Count is the decoded content of one bin.
type Count struct {
	// Value is the accumulated (possibly weighted) count.
	Value float64
	// Variance is the variance estimate of Value. For unweighted fills it
	// equals Value.
	Variance float64
}

// Histogram counts entries in bins over a fixed set of axes.
//
// A Histogram is not safe for concurrent use; see the nhist package docs.
type Histogram struct {
	axes    []axis.Axis
	storage *storage.Storage
	growing bool

	// Per-axis scratch reused across fills.
	shifts []int
	locals []int
}

// New creates a histogram over the given axes. At least one axis is
// required. The axes are captured as given; growing axes are mutated by
// fills, so they must not be shared between histograms.
func New(axes ...axis.Axis) (*Histogram, error) {
	if len(axes) == 0 {
		return nil, errs.ErrAxisRequired
	}

	h := &Histogram{
		axes:   slices.Clone(axes),
		shifts: make([]int, len(axes)),
		locals: make([]int, len(axes)),
	}
	for _, a := range h.axes {
		if axis.IsGrowing(a) {
			h.growing = true
		}
	}
	h.storage = storage.New(h.totalExtent())

	return h, nil
}

func (h *Histogram) totalExtent() int {
	total := 1
	for _, a := range h.axes {
		total *= a.Extent()
	}

	return total
}

// Rank returns the number of axes.
func (h *Histogram) Rank() int {
	return len(h.axes)
}

// NumBins returns the total number of storage bins, including reserved
// under/overflow bins.
func (h *Histogram) NumBins() int {
	return h.storage.Len()
}

// AxisAt returns the axis of dimension i.
func (h *Histogram) AxisAt(i int) (axis.Axis, error) {
	if i < 0 || i >= len(h.axes) {
		return nil, fmt.Errorf("%w: axis %d of %d", errs.ErrIndexOutOfRange, i, len(h.axes))
	}

	return h.axes[i], nil
}

// AxesID returns the fingerprint of the current axis configuration. It is
// not cached: growing axes change it as they grow.
func (h *Histogram) AxesID() uint64 {
	return axis.Fingerprint(h.axes)
}

// Storage exposes the underlying counter storage.
func (h *Histogram) Storage() *storage.Storage {
	return h.storage
}

// Reset discards all counts, keeping the axes.
func (h *Histogram) Reset() {
	h.storage.Reset(h.totalExtent())
}

// At returns the content of the bin addressed by one local index per axis.
// Local index -1 addresses the underflow bin and Size() the overflow bin of
// axes that reserve them. Indices that address no bin return
// ErrIndexOutOfRange; unlike Fill, strict access never drops silently.
func (h *Histogram) At(indices ...int) (Count, error) {
	if len(indices) != len(h.axes) {
		return Count{}, fmt.Errorf("%w: got %d indices for %d axes", errs.ErrArgumentCount, len(indices), len(h.axes))
	}

	idx := newOptionalIndex()
	for k, a := range h.axes {
		j := indices[k]
		if a.Options().Has(axis.Underflow) {
			j++
		}
		idx.fold(j, a.Extent())
	}
	if !idx.valid() {
		return Count{}, fmt.Errorf("%w: indices %v", errs.ErrIndexOutOfRange, indices)
	}

	return Count{
		Value:    h.storage.Value(idx.offset),
		Variance: h.storage.Variance(idx.offset),
	}, nil
}

// Value returns the count of the addressed bin. See At for the index
// convention.
func (h *Histogram) Value(indices ...int) (float64, error) {
	c, err := h.At(indices...)
	if err != nil {
		return 0, err
	}

	return c.Value, nil
}

// Variance returns the variance estimate of the addressed bin. See At for
// the index convention.
func (h *Histogram) Variance(indices ...int) (float64, error) {
	c, err := h.At(indices...)
	if err != nil {
		return 0, err
	}

	return c.Variance, nil
}

// Sum returns the total of all bin values, reserved bins included.
func (h *Histogram) Sum() float64 {
	total := 0.0
	for i := 0; i < h.storage.Len(); i++ {
		total += h.storage.Value(i)
	}

	return total
}

// Add merges other into h bin for bin. Both histograms must have identical
// axis configurations; the check runs before h is touched, so a failed Add
// leaves h unchanged.
func (h *Histogram) Add(other *Histogram) error {
	if h.AxesID() != other.AxesID() {
		return errs.ErrAxesMismatch
	}

	return h.storage.Add(other.storage)
}

// Equal reports whether both histograms have identical axis configurations
// and decode to the same counts bin for bin. The internal counter width does
// not participate.
func (h *Histogram) Equal(other *Histogram) bool {
	return h.AxesID() == other.AxesID() && h.storage.Equal(other.storage)
}

// MarshalBlob serializes the counts into a storage blob stamped with the
// axis-set fingerprint. The axes themselves are configuration, not payload,
// and are not serialized.
func (h *Histogram) MarshalBlob(opts ...blob.EncodeOption) ([]byte, error) {
	opts = append(opts, blob.WithAxesID(h.AxesID()))

	return blob.Encode(h.storage, opts...)
}

// UnmarshalBlob replaces the counts with the content of a storage blob. The
// blob must carry this histogram's axis-set fingerprint and bin count; both
// are checked before the storage is touched.
func (h *Histogram) UnmarshalBlob(data []byte) error {
	header, err := blob.ParseHeader(data)
	if err != nil {
		return err
	}
	if header.AxesID != h.AxesID() {
		return fmt.Errorf("%w: blob %#x, histogram %#x", errs.ErrAxesFingerprintMismatch, header.AxesID, h.AxesID())
	}
	if header.BinCount != uint64(h.totalExtent()) {
		return fmt.Errorf("%w: blob has %d bins, histogram has %d", errs.ErrInvalidPayload, header.BinCount, h.totalExtent())
	}

	_, err = blob.Decode(data, h.storage)

	return err
}
