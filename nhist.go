// Package nhist provides a multidimensional histogram with adaptive counter
// storage and a compact binary serialization format.
//
// A histogram is configured once with a set of axes and then filled with
// entries, one coordinate per axis. Counters start as 8-bit integers and are
// promoted automatically (8 → 16 → 32 → 64 bit) as they grow; the first
// weighted fill switches the storage to a float64 representation that also
// tracks a variance estimate per bin. Axes can reserve underflow and
// overflow bins for out-of-range values, or grow their range on demand.
//
// # Basic usage
//
//	ax, err := axis.NewRegular(10, 0.0, 1.0)
//	if err != nil {
//		return err
//	}
//	h, err := nhist.New(ax)
//	if err != nil {
//		return err
//	}
//
//	h.Fill(0.23)
//	h.Fill(0.23, nhist.Weight(2.5))
//
//	count, err := h.At(2)
//
// # Serialization
//
//	data, err := nhist.Marshal(h, blob.WithCompression(format.CompressionZstd))
//	...
//	err = nhist.Unmarshal(data, h)
//
// The blob carries the counts and a fingerprint of the axis configuration;
// the axes themselves are configuration and must be reconstructed by the
// reader. Unmarshal refuses blobs whose fingerprint does not match the
// receiving histogram.
//
// # Concurrency
//
// A Histogram is not safe for concurrent use. Callers that fill from
// multiple goroutines should fill one histogram per goroutine and merge
// them with Add, which is cheaper than locking every fill.
package nhist

import (
	"github.com/arloliu/nhist/axis"
	"github.com/arloliu/nhist/blob"
	"github.com/arloliu/nhist/hist"
)

// Histogram counts entries in bins over a fixed set of axes.
type Histogram = hist.Histogram

// Count is the decoded content of one bin.
type Count = hist.Count

// Weight tags a Fill argument as the entry weight.
type Weight = hist.Weight

// Sample tags a Fill argument as sample components to accumulate.
type Sample = hist.Sample

// New creates a histogram over the given axes.
func New(axes ...axis.Axis) (*Histogram, error) {
	return hist.New(axes...)
}

// Marshal serializes the histogram's counts into a storage blob.
func Marshal(h *Histogram, opts ...blob.EncodeOption) ([]byte, error) {
	return h.MarshalBlob(opts...)
}

// Unmarshal replaces the histogram's counts with the content of a storage
// blob previously produced by Marshal.
func Unmarshal(data []byte, h *Histogram) error {
	return h.UnmarshalBlob(data)
}

// AxesID returns the fingerprint of an axis configuration. It matches the
// fingerprint stamped into blobs by Marshal.
func AxesID(axes ...axis.Axis) uint64 {
	return axis.Fingerprint(axes)
}
