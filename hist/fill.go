package hist

import (
	"fmt"

	"github.com/arloliu/nhist/axis"
	"github.com/arloliu/nhist/errs"
)

// Weight tags a Fill argument as the entry weight. It is only recognized at
// the ends of the argument list, next to the coordinate values.
type Weight float64

// Sample tags a Fill argument as sample components to accumulate into the
// target bin. Like Weight it is only recognized at the ends of the argument
// list.
type Sample []float64

// splitArgs separates the coordinate values from an optional Weight and
// Sample. The tags may appear in the first one or two positions, the last
// one or two positions, or one at each end; the coordinate values between
// them stay contiguous. A tag of a kind that was already seen, or one buried
// among the coordinates, is an argument error.
func splitArgs(args []any) (values []any, w Weight, hasW bool, smp Sample, hasS bool, err error) {
	start, end := 0, len(args)

	take := func(v any) bool {
		switch t := v.(type) {
		case Weight:
			if hasW {
				return false
			}
			w, hasW = t, true
		case Sample:
			if hasS {
				return false
			}
			smp, hasS = t, true
		default:
			return false
		}

		return true
	}

	if start < end && take(args[start]) {
		start++
		if start < end && take(args[start]) {
			start++
		}
	}
	if start < end && take(args[end-1]) {
		end--
		if start < end && take(args[end-1]) {
			end--
		}
	}

	values = args[start:end]
	for _, v := range values {
		switch v.(type) {
		case Weight, Sample:
			return nil, 0, false, nil, false,
				fmt.Errorf("%w: misplaced weight or sample argument", errs.ErrArgumentCount)
		}
	}

	return values, w, hasW, smp, hasS, nil
}

// Fill adds one entry at the coordinates given by the values, one per axis.
// An optional Weight scales the entry; an optional Sample accumulates its
// components into the bin instead of a plain count. Both tags are recognized
// only at the ends of the argument list.
//
// A one-dimensional histogram whose sole axis interprets compound values may
// be filled with more than one residual value; they are forwarded to the
// axis as a single []any.
//
// Values that land outside the reserved range of a non-growing axis are
// dropped silently; the fill path never fails on out-of-range data, only on
// malformed argument lists.
func (h *Histogram) Fill(args ...any) error {
	values, w, hasW, smp, hasS, err := splitArgs(args)
	if err != nil {
		return err
	}

	if len(h.axes) == 1 && len(values) > 1 {
		values = []any{values}
	}
	if len(values) != len(h.axes) {
		return fmt.Errorf("%w: got %d values for %d axes", errs.ErrArgumentCount, len(values), len(h.axes))
	}

	offset, ok := h.fillIndex(values)
	if !ok {
		return nil
	}

	switch {
	case hasS:
		weight := 1.0
		if hasW {
			weight = float64(w)
		}
		for _, x := range smp {
			h.storage.Observe(offset, weight, x)
		}
	case hasW:
		h.storage.IncreaseWeighted(offset, float64(w))
	default:
		h.storage.Increase(offset)
	}

	return nil
}

// fillIndex maps one value per axis to a flat storage offset, growing axes
// and migrating the storage as a side effect. It reports false when the
// entry addresses no bin.
func (h *Histogram) fillIndex(values []any) (int, bool) {
	grew := false
	for k, a := range h.axes {
		var j int
		if g, ok := a.(axis.Growable); h.growing && ok && a.Options().Has(axis.Growth) {
			var shift int
			j, shift = g.Update(values[k])
			h.shifts[k] = shift
			grew = grew || shift != 0
		} else {
			j = a.Index(values[k])
			h.shifts[k] = 0
		}
		if a.Options().Has(axis.Underflow) {
			j++
		}
		h.locals[k] = j
	}

	if grew {
		h.migrate()
	}

	idx := newOptionalIndex()
	for k, a := range h.axes {
		idx.fold(h.locals[k], a.Extent())
	}
	if !idx.valid() {
		return 0, false
	}

	return idx.offset, true
}
