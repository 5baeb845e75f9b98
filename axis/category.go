package axis

import (
	"fmt"
	"strconv"

	"github.com/arloliu/nhist/errs"
	"github.com/arloliu/nhist/internal/hash"
)

// Category is an axis over an ordered set of string labels, one bin per
// label. Unknown labels map to the overflow bin by default; constructed with
// WithGrowth the axis appends a new bin for each unknown label instead.
type Category struct {
	labels []string
	lookup map[string]int
	opts   Options
}

var (
	_ Axis     = (*Category)(nil)
	_ Growable = (*Category)(nil)
)

// NewCategory creates a category axis over the given labels in order.
//
// Parameters:
//   - labels: Initial labels, one bin each (must be unique; may be empty
//     only when WithGrowth is given)
//   - opts: WithoutOverflow, WithGrowth
//
// Returns:
//   - *Category: The created axis.
//   - error: ErrInvalidAxisConfig on duplicate labels or an empty,
//     non-growing label set.
func NewCategory(labels []string, opts ...Option) (*Category, error) {
	flags, err := applyOptions(Overflow, opts)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 && !flags.Has(Growth) {
		return nil, fmt.Errorf("%w: category axis requires labels or growth", errs.ErrInvalidAxisConfig)
	}

	a := &Category{
		labels: append([]string(nil), labels...),
		lookup: make(map[string]int, len(labels)),
		opts:   flags,
	}
	for i, label := range labels {
		if _, dup := a.lookup[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", errs.ErrInvalidAxisConfig, label)
		}
		a.lookup[label] = i
	}

	return a, nil
}

// Index maps a label to its bin. Unknown labels and non-string values map to
// Size(), the overflow range.
func (a *Category) Index(value any) int {
	s, ok := value.(string)
	if !ok {
		return len(a.labels)
	}
	if i, found := a.lookup[s]; found {
		return i
	}

	return len(a.labels)
}

// Update maps a label like Index, appending a new bin for unknown labels
// when the axis was constructed with WithGrowth.
func (a *Category) Update(value any) (int, int) {
	if !a.opts.Has(Growth) {
		return a.Index(value), 0
	}

	s, ok := value.(string)
	if !ok {
		return len(a.labels), 0
	}
	if i, found := a.lookup[s]; found {
		return i, 0
	}

	a.lookup[s] = len(a.labels)
	a.labels = append(a.labels, s)

	return len(a.labels) - 1, 1
}

func (a *Category) Size() int {
	return len(a.labels)
}

func (a *Category) Extent() int {
	return extentFor(len(a.labels), a.opts)
}

func (a *Category) Options() Options {
	return a.opts
}

// Labels returns the axis labels in bin order. The returned slice is shared;
// callers must not modify it.
func (a *Category) Labels() []string {
	return a.labels
}

func (a *Category) Fingerprint() uint64 {
	parts := make([]string, 0, len(a.labels)+2)
	parts = append(parts, "category", strconv.Itoa(int(a.opts)))
	parts = append(parts, a.labels...)

	return hash.Combine(parts...)
}
