package peel

// bufferStore owns the double-buffered partials vectors, the per-matrix
// transition-matrix slots, and the tip-state/tip-partials arrays. It
// implements C1 of the design: spec §4.1.
//
// Partials buffers [0,T) are tips; [T,B) are internal nodes. A tip slot is
// backed by a compact tip-state row, a full tip-partials row, or both if
// both setters were called — tracked per-slot in tipHasStates and
// tipHasPartials. If setTipPartials is
// ever called for any tip, the kernel treats ALL tips as partials (mixed
// mode unsupported); this is latched the first time setTipPartials is
// called, exactly as spec §4.1's policy paragraph describes.
type bufferStore struct {
	dims Dims

	// partials[gen] is a flat buffer of length B*P*S*C, generation gen in {0,1}.
	partials        [2][]float64
	partialsCurrent []int // per-slot current generation, len B
	partialsStored  []int // per-slot snapshot generation, len B

	// tipStates[i] is a length-P row of integer states in [0,S] for tip i.
	tipStates [][]int

	// tipHasStates[i] / tipHasPartials[i] track which representation, if
	// any, has been populated for tip i.
	tipHasStates   []bool
	tipHasPartials []bool

	// anyTipPartials latches true the first time setTipPartials is called
	// for any tip; once true, the kernel never reads tipStates.
	anyTipPartials bool

	// matrices[gen] is a flat buffer of length M*C*(S+1)*S.
	matrices        [2][]float64
	matricesCurrent []int // per-slot current generation, len M
	matricesStored  []int // per-slot snapshot generation, len M
}

func newBufferStore(d Dims) (*bufferStore, error) {
	partialsLen := d.BufferCount * d.PatternCount * d.StateCount * d.CategoryCount
	matricesLen := d.MatrixCount * d.CategoryCount * (d.StateCount + 1) * d.StateCount
	if partialsLen < 0 || matricesLen < 0 {
		return nil, StatusOutOfMemory
	}

	bs := &bufferStore{
		dims:            d,
		partialsCurrent: make([]int, d.BufferCount),
		partialsStored:  make([]int, d.BufferCount),
		tipStates:       make([][]int, d.TipCount),
		tipHasStates:    make([]bool, d.TipCount),
		tipHasPartials:  make([]bool, d.TipCount),
		matricesCurrent: make([]int, d.MatrixCount),
		matricesStored:  make([]int, d.MatrixCount),
	}
	bs.partials[0] = make([]float64, partialsLen)
	bs.partials[1] = make([]float64, partialsLen)
	bs.matrices[0] = make([]float64, matricesLen)
	bs.matrices[1] = make([]float64, matricesLen)
	return bs, nil
}

// rowLen is the length of one partials buffer: P*S*C.
func (bs *bufferStore) rowLen() int {
	return bs.dims.PatternCount * bs.dims.StateCount * bs.dims.CategoryCount
}

// partialsRow returns the currently-current partials row for buffer i.
func (bs *bufferStore) partialsRow(i int) []float64 {
	gen := bs.partialsCurrent[i]
	off := i * bs.rowLen()
	return bs.partials[gen][off : off+bs.rowLen()]
}

// flipPartials flips the current generation for buffer i before a write and
// returns the (now current) row to write into.
func (bs *bufferStore) flipPartials(i int) []float64 {
	bs.partialsCurrent[i] ^= 1
	return bs.partialsRow(i)
}

func (bs *bufferStore) matrixRowLen() int {
	return bs.dims.CategoryCount * (bs.dims.StateCount + 1) * bs.dims.StateCount
}

func (bs *bufferStore) matrixRow(m int) []float64 {
	gen := bs.matricesCurrent[m]
	off := m * bs.matrixRowLen()
	return bs.matrices[gen][off : off+bs.matrixRowLen()]
}

func (bs *bufferStore) flipMatrix(m int) []float64 {
	bs.matricesCurrent[m] ^= 1
	return bs.matrixRow(m)
}

// setTipPartials copies P*S reals into tip slot i, replicated across every
// rate category so the kernel's per-category loop stays uniform. Latches
// anyTipPartials (spec §4.1).
func (inst *Instance) setTipPartials(i int, src []float64) error {
	d := inst.dims
	if i < 0 || i >= d.TipCount {
		return outOfRange("tip index %d out of range [0,%d)", i, d.TipCount)
	}
	if len(src) != d.PatternCount*d.StateCount {
		return outOfRange("tip partials length %d, want %d", len(src), d.PatternCount*d.StateCount)
	}

	bs := inst.store
	bs.anyTipPartials = true
	bs.tipHasPartials[i] = true

	row := bs.flipPartials(i)
	s, p, c := d.StateCount, d.PatternCount, d.CategoryCount
	for cat := 0; cat < c; cat++ {
		base := cat * p * s
		copy(row[base:base+p*s], src)
	}
	return nil
}

// setTipStates copies P integers into tip slot i, clamping out-of-range
// values to the sentinel S ("missing/ambiguous").
func (inst *Instance) setTipStates(i int, src []int) error {
	d := inst.dims
	if i < 0 || i >= d.TipCount {
		return outOfRange("tip index %d out of range [0,%d)", i, d.TipCount)
	}
	if len(src) != d.PatternCount {
		return outOfRange("tip states length %d, want %d", len(src), d.PatternCount)
	}

	bs := inst.store
	row := make([]int, d.PatternCount)
	for k, v := range src {
		if v < 0 || v > d.StateCount {
			v = d.StateCount
		}
		row[k] = v
	}
	bs.tipStates[i] = row
	bs.tipHasStates[i] = true
	return nil
}

// getPartials bulk-copies the currently-current partials buffer of slot i
// into dst, which must have length P*S*C.
func (inst *Instance) getPartials(i int, dst []float64) error {
	d := inst.dims
	if i < 0 || i >= d.BufferCount {
		return outOfRange("buffer index %d out of range [0,%d)", i, d.BufferCount)
	}
	row := inst.store.partialsRow(i)
	if len(dst) != len(row) {
		return outOfRange("dst length %d, want %d", len(dst), len(row))
	}
	copy(dst, row)
	return nil
}

// useTipPartials reports whether tip kernels should read the partials path
// (true) or the compact tip-state path (false) for slot i, per the
// instance-wide latch described in spec §4.1.
func (bs *bufferStore) useTipPartials(i int) bool {
	return bs.anyTipPartials
}
