package axis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/internal/hash"
)

// Variable is an axis with bins defined by an ascending sequence of edges;
// bin i covers [edges[i], edges[i+1]). It reserves underflow and overflow
// bins by default.
type Variable struct {
	edges []float64
	opts  Options
}

var _ Axis = (*Variable)(nil)

// NewVariable creates a variable-width axis from the given bin edges.
//
// Parameters:
//   - edges: Strictly ascending, finite edges (at least two)
//   - opts: WithoutUnderflow, WithoutOverflow
//
// Returns:
//   - *Variable: The created axis.
//   - error: ErrInvalidAxisConfig if the edges are invalid.
func NewVariable(edges []float64, opts ...Option) (*Variable, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: at least two edges required", errs.ErrInvalidAxisConfig)
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("%w: edge %d is not finite", errs.ErrInvalidAxisConfig, i)
		}
		if i > 0 && edges[i-1] >= e {
			return nil, fmt.Errorf("%w: edges must be strictly ascending", errs.ErrInvalidAxisConfig)
		}
	}

	flags, err := applyOptions(Underflow|Overflow, opts)
	if err != nil {
		return nil, err
	}
	if flags.Has(Growth) {
		return nil, fmt.Errorf("%w: variable axis does not support growth", errs.ErrInvalidAxisConfig)
	}

	return &Variable{edges: append([]float64(nil), edges...), opts: flags}, nil
}

// Index maps a value to the bin whose edge interval contains it. Values
// below the first edge map to -1, values at or above the last edge map to
// Size(). NaN maps to the overflow range.
func (a *Variable) Index(value any) int {
	x, ok := toFloat(value)
	if !ok || math.IsNaN(x) {
		return a.Size()
	}
	if x < a.edges[0] {
		return -1
	}
	if x >= a.edges[len(a.edges)-1] {
		return a.Size()
	}

	// First edge strictly greater than x; the bin is one to its left.
	j := sort.Search(len(a.edges), func(i int) bool { return a.edges[i] > x })

	return j - 1
}

func (a *Variable) Size() int {
	return len(a.edges) - 1
}

func (a *Variable) Extent() int {
	return extentFor(a.Size(), a.opts)
}

func (a *Variable) Options() Options {
	return a.opts
}

// Edges returns the bin edges. The returned slice is shared; callers must
// not modify it.
func (a *Variable) Edges() []float64 {
	return a.edges
}

func (a *Variable) Fingerprint() uint64 {
	parts := make([]string, 0, len(a.edges)+2)
	parts = append(parts, "variable", strconv.Itoa(int(a.opts)))
	for _, e := range a.edges {
		parts = append(parts, strconv.FormatFloat(e, 'g', -1, 64))
	}

	return hash.Combine(parts...)
}
