package axis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/internal/hash"
)

// Regular is an axis with evenly spaced bins over the half-open interval
// [min, max). It reserves underflow and overflow bins by default.
type Regular struct {
	bins int
	min  float64
	max  float64
	opts Options
}

var _ Axis = (*Regular)(nil)

// NewRegular creates a regular axis with bins evenly spaced bins over
// [min, max).
//
// Parameters:
//   - bins: Number of regular bins (must be positive)
//   - min, max: Range bounds (must be finite with min < max)
//   - opts: WithoutUnderflow, WithoutOverflow
//
// Returns:
//   - *Regular: The created axis.
//   - error: ErrInvalidAxisConfig if the parameters are invalid.
func NewRegular(bins int, min, max float64, opts ...Option) (*Regular, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: bins must be positive, got %d", errs.ErrInvalidAxisConfig, bins)
	}
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) || min >= max {
		return nil, fmt.Errorf("%w: invalid range [%v, %v)", errs.ErrInvalidAxisConfig, min, max)
	}

	flags, err := applyOptions(Underflow|Overflow, opts)
	if err != nil {
		return nil, err
	}
	if flags.Has(Growth) {
		return nil, fmt.Errorf("%w: regular axis does not support growth", errs.ErrInvalidAxisConfig)
	}

	return &Regular{bins: bins, min: min, max: max, opts: flags}, nil
}

// Index maps a value to its local bin index. Values below min map to -1,
// values at or above max map to Size(). NaN maps to the overflow range.
func (a *Regular) Index(value any) int {
	x, ok := toFloat(value)
	if !ok || math.IsNaN(x) {
		return a.bins
	}

	z := (x - a.min) / (a.max - a.min)
	if z < 0 {
		return -1
	}
	if z >= 1 {
		return a.bins
	}

	j := int(z * float64(a.bins))
	if j >= a.bins {
		// Guard against rounding at the upper edge.
		j = a.bins - 1
	}

	return j
}

func (a *Regular) Size() int {
	return a.bins
}

func (a *Regular) Extent() int {
	return extentFor(a.bins, a.opts)
}

func (a *Regular) Options() Options {
	return a.opts
}

// Min returns the lower bound of the axis range.
func (a *Regular) Min() float64 {
	return a.min
}

// Max returns the upper bound of the axis range.
func (a *Regular) Max() float64 {
	return a.max
}

func (a *Regular) Fingerprint() uint64 {
	return hash.Combine("regular",
		strconv.Itoa(a.bins),
		strconv.FormatFloat(a.min, 'g', -1, 64),
		strconv.FormatFloat(a.max, 'g', -1, 64),
		strconv.Itoa(int(a.opts)),
	)
}
