package hist

// optionalIndex accumulates the row-major mixed-radix fold that turns one
// local index per axis into a flat storage offset. A stride of zero marks
// the index invalid; once invalid it can never become valid again, so axes
// after the failing one still fold without branching.
type optionalIndex struct {
	offset int
	stride int
}

func newOptionalIndex() optionalIndex {
	return optionalIndex{stride: 1}
}

func (x optionalIndex) valid() bool {
	return x.stride != 0
}

// fold advances the fold by one axis. j is the local index with the
// underflow shift already applied; extent is the axis extent including any
// reserved bins. A j outside [0, extent) invalidates the index.
func (x *optionalIndex) fold(j, extent int) {
	x.offset += j * x.stride
	if j >= 0 && j < extent {
		x.stride *= extent
	} else {
		x.stride = 0
	}
}
