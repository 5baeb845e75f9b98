package axis

import (
	"fmt"
	"strconv"

	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/internal/hash"
)

// Integer is an axis with one bin per integer over the half-open interval
// [min, max). It reserves underflow and overflow bins by default; constructed
// with WithGrowth it extends its range instead.
type Integer struct {
	min  int
	size int
	opts Options
}

var (
	_ Axis     = (*Integer)(nil)
	_ Growable = (*Integer)(nil)
)

// NewInteger creates an integer axis covering [min, max).
//
// Parameters:
//   - min, max: Integer range bounds (must satisfy min < max)
//   - opts: WithoutUnderflow, WithoutOverflow, WithGrowth
//
// Returns:
//   - *Integer: The created axis.
//   - error: ErrInvalidAxisConfig if the parameters are invalid.
func NewInteger(min, max int, opts ...Option) (*Integer, error) {
	if min >= max {
		return nil, fmt.Errorf("%w: invalid range [%d, %d)", errs.ErrInvalidAxisConfig, min, max)
	}

	flags, err := applyOptions(Underflow|Overflow, opts)
	if err != nil {
		return nil, err
	}

	return &Integer{min: min, size: max - min, opts: flags}, nil
}

// Index maps a value to its local bin index, flooring fractional values.
// Values below min map to -1, values at or above max map to Size().
func (a *Integer) Index(value any) int {
	v, ok := toInt(value)
	if !ok {
		return a.size
	}

	i := v - a.min
	if i < 0 {
		return -1
	}
	if i >= a.size {
		return a.size
	}

	return i
}

// Update maps a value like Index, extending the range when the axis was
// constructed with WithGrowth. Without growth it behaves exactly like Index
// with a zero shift.
func (a *Integer) Update(value any) (int, int) {
	if !a.opts.Has(Growth) {
		return a.Index(value), 0
	}

	v, ok := toInt(value)
	if !ok {
		// Not representable; report the out-of-range side without growing.
		return a.size, 0
	}

	i := v - a.min
	if i < 0 {
		// Insert -i bins below; existing bins shift up by -i.
		a.min = v
		a.size -= i

		return 0, i
	}
	if i >= a.size {
		n := i - a.size + 1
		a.size = i + 1

		return i, n
	}

	return i, 0
}

func (a *Integer) Size() int {
	return a.size
}

func (a *Integer) Extent() int {
	return extentFor(a.size, a.opts)
}

func (a *Integer) Options() Options {
	return a.opts
}

// Min returns the lowest integer covered by the axis.
func (a *Integer) Min() int {
	return a.min
}

// Max returns one past the highest integer covered by the axis.
func (a *Integer) Max() int {
	return a.min + a.size
}

// Fingerprint covers the current range, so two growing axes are mergeable
// only after they have grown to the same span.
func (a *Integer) Fingerprint() uint64 {
	return hash.Combine("integer",
		strconv.Itoa(a.min),
		strconv.Itoa(a.size),
		strconv.Itoa(int(a.opts)),
	)
}
