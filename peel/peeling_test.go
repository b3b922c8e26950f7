package peel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePartials_StatesStates_TwoTipJC69(t *testing.T) {
	d := baseDims()
	inst := newJC69Instance(t, d)

	require.NoError(t, inst.SetTipStates(0, []int{0})) // A
	require.NoError(t, inst.SetTipStates(1, []int{0})) // A

	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.1, 0.1}))

	ops := []Operation{{Dest: 2, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1}}
	require.NoError(t, inst.UpdatePartials(ops, false))

	dest := inst.store.partialsRow(2)
	for i := 0; i < d.StateCount; i++ {
		want := jc69Prob(0.1, i, 0) * jc69Prob(0.1, i, 0)
		assert.InDelta(t, want, dest[i], 1e-12)
		assert.GreaterOrEqual(t, dest[i], 0.0)
	}
}

func TestUpdatePartials_MissingStateEqualsUniformPartials(t *testing.T) {
	d := baseDims()

	instMissing := newJC69Instance(t, d)
	require.NoError(t, instMissing.SetTipStates(0, []int{d.StateCount})) // sentinel = missing
	require.NoError(t, instMissing.SetTipStates(1, []int{1}))
	require.NoError(t, instMissing.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.2, 0.2}))
	require.NoError(t, instMissing.UpdatePartials([]Operation{{Dest: 2, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1}}, false))
	gotMissing := append([]float64{}, instMissing.store.partialsRow(2)...)

	instUniform := newJC69Instance(t, d)
	// tips-use-partials mode is latched instance-wide, so tip 1 is given the
	// partials equivalent of state 1 rather than a compact state.
	require.NoError(t, instUniform.SetTipPartials(0, []float64{1, 1, 1, 1}))
	require.NoError(t, instUniform.SetTipPartials(1, []float64{0, 1, 0, 0}))
	require.NoError(t, instUniform.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.2, 0.2}))
	require.NoError(t, instUniform.UpdatePartials([]Operation{{Dest: 2, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1}}, false))
	gotUniform := instUniform.store.partialsRow(2)

	for i := range gotMissing {
		assert.InDelta(t, gotUniform[i], gotMissing[i], 1e-12)
	}
}

func TestUpdatePartials_PartialsPartials_DispatchesCorrectly(t *testing.T) {
	d := baseDims()
	d.BufferCount = 5 // two tips + three internal buffers
	inst := newJC69Instance(t, d)

	require.NoError(t, inst.SetTipStates(0, []int{0}))
	require.NoError(t, inst.SetTipStates(1, []int{1}))
	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.1, 0.15}))

	// buffer 2: tip0 x tip1 (states x states)
	require.NoError(t, inst.UpdatePartials([]Operation{
		{Dest: 2, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1},
	}, false))

	require.NoError(t, inst.SetTipStates(1, []int{2}))
	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{1}, []float64{0.05}))
	// buffer 3: tip0 x tip1 again, different branch length (states x states)
	require.NoError(t, inst.UpdatePartials([]Operation{
		{Dest: 3, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1},
	}, false))

	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.2, 0.3}))
	// buffer 4: buffer2 x buffer3, both internal -> partials x partials path
	require.NoError(t, inst.UpdatePartials([]Operation{
		{Dest: 4, ScaleIdx: ScaleNone, Child1: 2, Matrix1: 0, Child2: 3, Matrix2: 1},
	}, false))

	got := append([]float64{}, inst.store.partialsRow(4)...)

	want := make([]float64, d.StateCount*d.PatternCount*d.CategoryCount)
	partialsPartials(d, want, inst.store.matrixRow(0), inst.store.partialsRow(2), inst.store.matrixRow(1), inst.store.partialsRow(3))

	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
		assert.GreaterOrEqual(t, got[i], 0.0)
	}
}

func TestUpdatePartials_RejectsOutOfRangeIndices(t *testing.T) {
	d := baseDims()
	inst := newJC69Instance(t, d)
	require.NoError(t, inst.SetTipStates(0, []int{0}))
	require.NoError(t, inst.SetTipStates(1, []int{0}))
	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0}, []float64{0.1}))

	err := inst.UpdatePartials([]Operation{{Dest: 99, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 0, ScaleIdx: ScaleNone}}, false)
	assert.Error(t, err)
}
