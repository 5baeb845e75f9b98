package hist

// axisGeom captures, per axis, what the storage migration needs after a
// growth step: the extent before growth, the number of bins inserted below,
// and the row-major stride in the grown layout.
type axisGeom struct {
	oldExtent int
	add       int
	newStride int
}

// migrate rebuilds the storage after one or more axes grew. h.shifts holds
// the per-axis shift reported by Update; the axes themselves already carry
// the new extents. Every old bin keeps its count: the old flat offset is
// decomposed with the old extents and recomposed with the new strides, with
// bins inserted below shifting the local coordinate up.
func (h *Histogram) migrate() {
	geoms := make([]axisGeom, len(h.axes))
	newTotal := 1
	for k, a := range h.axes {
		ext := a.Extent()
		sh := h.shifts[k]
		add := 0
		if sh < 0 {
			add = -sh
			sh = -sh
		}
		geoms[k] = axisGeom{
			oldExtent: ext - sh,
			add:       add,
			newStride: newTotal,
		}
		newTotal *= ext
	}

	h.storage = h.storage.Remap(newTotal, func(i int) int {
		j := 0
		for k := range geoms {
			g := geoms[k]
			j += (i%g.oldExtent + g.add) * g.newStride
			i /= g.oldExtent
		}

		return j
	})
}
