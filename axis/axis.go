// Package axis defines the axis contract consumed by the histogram engine
// and provides the built-in axis kinds.
//
// An axis maps a value to a small integer local bin index along one
// dimension. It may reserve extra bins for values below or above its range
// (underflow and overflow), or instead extend its range when it sees an
// out-of-range value (growth).
//
// # Index convention
//
// Index returns a local index in [-1, Size()]:
//   - -1 addresses the range below the axis
//   - 0..Size()-1 address the regular bins
//   - Size() addresses the range above the axis
//
// Whether -1 and Size() land in real bins depends on the reservation flags
// reported by Options. The histogram engine shifts indices by +1 for axes
// that reserve an underflow bin; axes never apply that shift themselves.
//
// # Growth
//
// An axis that supports growth implements the Growable interface and sets
// the Growth option bit. Update behaves like Index but extends the range
// instead of rejecting the value, reporting how many bins were inserted and
// on which side through the shift return. The engine queries the capability
// once per histogram and caches it.
package axis

import (
	"math"

	"github.com/arloliu/nhist/internal/hash"
	"github.com/arloliu/nhist/internal/options"
)

// Options is a packed field of axis behavior flags.
type Options uint8

const (
	// Underflow indicates the axis reserves a bin for values below its range.
	Underflow Options = 1 << iota
	// Overflow indicates the axis reserves a bin for values above its range.
	Overflow
	// Growth indicates the axis extends its range on out-of-range values.
	Growth
)

// Has reports whether all bits of flag are set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

// Axis maps values to local bin indices along one dimension.
type Axis interface {
	// Index maps a value to a local bin index in [-1, Size()]. Values the
	// axis cannot interpret map to Size() (the overflow range).
	Index(value any) int

	// Size returns the number of regular bins, excluding reserved
	// under/overflow bins.
	Size() int

	// Extent returns Size() plus the number of reserved under/overflow bins.
	Extent() int

	// Options returns the axis behavior flags.
	Options() Options

	// Fingerprint returns a stable hash of the axis kind and configuration.
	// Two axes with equal fingerprints are interchangeable for merging.
	Fingerprint() uint64
}

// Growable is implemented by axes that can extend their range.
type Growable interface {
	Axis

	// Update maps a value like Index, but extends the axis range when the
	// value falls outside it. The returned shift is zero when the extent did
	// not change; otherwise its absolute value is the number of inserted
	// bins and its sign encodes the insertion side (negative = below).
	Update(value any) (index int, shift int)
}

// IsGrowing reports whether a is a growth-capable axis with growth enabled.
func IsGrowing(a Axis) bool {
	_, ok := a.(Growable)
	return ok && a.Options().Has(Growth)
}

// Fingerprint derives a single fingerprint for an ordered axis set.
func Fingerprint(axes []Axis) uint64 {
	ids := make([]uint64, len(axes))
	for i, a := range axes {
		ids[i] = a.Fingerprint()
	}

	return hash.CombineIDs(ids...)
}

// config carries the construction-time flags shared by axis kinds.
type config struct {
	opts Options
}

// Option is a functional option for axis construction.
type Option = options.Option[*config]

// WithoutUnderflow removes the reserved underflow bin. Values below the axis
// range are then dropped on fill and rejected on strict access.
func WithoutUnderflow() Option {
	return options.NoError(func(c *config) { c.opts &^= Underflow })
}

// WithoutOverflow removes the reserved overflow bin.
func WithoutOverflow() Option {
	return options.NoError(func(c *config) { c.opts &^= Overflow })
}

// WithGrowth makes the axis extend its range on out-of-range values instead
// of using under/overflow bins. Growth replaces both reserved bins.
func WithGrowth() Option {
	return options.NoError(func(c *config) {
		c.opts = (c.opts &^ (Underflow | Overflow)) | Growth
	})
}

func applyOptions(defaults Options, opts []Option) (Options, error) {
	cfg := &config{opts: defaults}
	if err := options.Apply(cfg, opts...); err != nil {
		return 0, err
	}

	return cfg.opts, nil
}

// extentFor returns size plus the bins reserved by opts.
func extentFor(size int, opts Options) int {
	n := size
	if opts.Has(Underflow) {
		n++
	}
	if opts.Has(Overflow) {
		n++
	}

	return n
}

// toFloat converts the numeric types accepted by range axes.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// toInt converts a value to an integer bin coordinate, flooring floats.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		return int(math.Floor(float64(v))), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return int(math.Floor(v)), true
	default:
		return 0, false
	}
}
