package peel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreRestoreState_RoundTripsCategoryRateMutation is the seed scenario
// from spec §8.3: compute LL1, snapshot, mutate category rates, recompute
// a different LL2, restore, and recompute LL3 which must equal LL1 exactly
// (the restored transition matrices are the untouched physical buffer, not
// a recomputation, so there is no floating-point drift to tolerate).
func TestStoreRestoreState_RoundTripsCategoryRateMutation(t *testing.T) {
	d := baseDims()
	inst := newJC69Instance(t, d)

	require.NoError(t, inst.SetTipStates(0, []int{0}))
	require.NoError(t, inst.SetTipStates(1, []int{1}))
	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.1, 0.2}))
	require.NoError(t, inst.UpdatePartials([]Operation{{Dest: 2, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1}}, false))

	freqs := []float64{0.25, 0.25, 0.25, 0.25}
	ll1 := make([]float64, d.PatternCount)
	require.NoError(t, inst.CalculateRootLogLikelihoods([]int{2}, []float64{1.0}, freqs, nil, ll1))

	require.NoError(t, inst.StoreState())

	require.NoError(t, inst.SetCategoryRates([]float64{2.5}))
	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0, 1}, []float64{0.1, 0.2}))
	require.NoError(t, inst.UpdatePartials([]Operation{{Dest: 2, ScaleIdx: ScaleNone, Child1: 0, Matrix1: 0, Child2: 1, Matrix2: 1}}, false))
	ll2 := make([]float64, d.PatternCount)
	require.NoError(t, inst.CalculateRootLogLikelihoods([]int{2}, []float64{1.0}, freqs, nil, ll2))
	assert.NotEqual(t, ll1[0], ll2[0])

	require.NoError(t, inst.RestoreState())
	ll3 := make([]float64, d.PatternCount)
	require.NoError(t, inst.CalculateRootLogLikelihoods([]int{2}, []float64{1.0}, freqs, nil, ll3))
	assert.Equal(t, ll1[0], ll3[0])
}

// TestStoreRestoreState_PreservesStoredMatrixAcrossTwoFlips checks that the
// double-buffered matrix slots round-trip correctly even after the matrix
// being restored was itself flipped twice since the last store (once by the
// mutating update, and implicitly by restore swapping roles back).
func TestStoreRestoreState_PreservesStoredMatrixAcrossTwoFlips(t *testing.T) {
	d := baseDims()
	inst := newJC69Instance(t, d)

	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0}, []float64{0.1}))
	want := append([]float64{}, inst.store.matrixRow(0)...)

	require.NoError(t, inst.StoreState())

	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0}, []float64{0.9}))
	got := inst.store.matrixRow(0)
	assert.NotEqual(t, want, got)

	require.NoError(t, inst.RestoreState())
	assert.Equal(t, want, inst.store.matrixRow(0))
}

// TestStoreRestoreState_RestoreRightAfterStoreIsANoop ensures restore on a
// freshly-constructed instance (store called once, nothing mutated since)
// leaves state unchanged.
func TestStoreRestoreState_RestoreRightAfterStoreIsANoop(t *testing.T) {
	d := baseDims()
	inst := newJC69Instance(t, d)
	require.NoError(t, inst.UpdateTransitionMatrices(0, []int{0}, []float64{0.1}))
	want := append([]float64{}, inst.store.matrixRow(0)...)

	require.NoError(t, inst.StoreState())
	require.NoError(t, inst.RestoreState())
	assert.Equal(t, want, inst.store.matrixRow(0))
}
