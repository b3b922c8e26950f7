package peel

// arena is a pair of equally sized scratch slices used for the
// "pointer-swap of two arenas" snapshot idiom spec §4.6 describes for
// scalar tables (eigenvalues, frequencies, rates, proportions, branch
// lengths): store() copies the live slice into the backup slice, and
// restore() swaps which slice is live in O(1) rather than re-copying data.
type arena struct {
	a, b   []float64
	liveIsA bool
}

func newArena(n int) *arena {
	return &arena{a: make([]float64, n), b: make([]float64, n), liveIsA: true}
}

// live returns the currently active slice; callers read and write through it.
func (ar *arena) live() []float64 {
	if ar.liveIsA {
		return ar.a
	}
	return ar.b
}

func (ar *arena) backup() []float64 {
	if ar.liveIsA {
		return ar.b
	}
	return ar.a
}

// store snapshots the live slice into the backup slice.
func (ar *arena) store() { copy(ar.backup(), ar.live()) }

// restore swaps the live/backup roles, making the last store()'d snapshot live again.
func (ar *arena) restore() { ar.liveIsA = !ar.liveIsA }
