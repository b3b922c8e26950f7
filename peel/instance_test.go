package peel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseDims() Dims {
	return Dims{
		TipCount:      2,
		BufferCount:   3,
		StateCount:    4,
		PatternCount:  1,
		CategoryCount: 1,
		EigenCount:    1,
		MatrixCount:   2,
	}
}

func TestNewInstance_AllocatesAndReturnsDims(t *testing.T) {
	d := baseDims()
	inst, err := NewInstance(d)
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.Equal(t, d.PatternCount*d.StateCount*d.CategoryCount, inst.store.rowLen())
	assert.Equal(t, d.BufferCount, inst.dims.BufferCount)
}

func TestNewInstance_RejectsInvalidDims(t *testing.T) {
	cases := []Dims{
		{TipCount: 2, BufferCount: 2, StateCount: 4, PatternCount: 1, CategoryCount: 1, EigenCount: 1, MatrixCount: 1}, // B <= T
		{TipCount: 0, BufferCount: 1, StateCount: 0, PatternCount: 1, CategoryCount: 1, EigenCount: 1, MatrixCount: 1}, // S <= 0
		{TipCount: 0, BufferCount: 1, StateCount: 4, PatternCount: 0, CategoryCount: 1, EigenCount: 1, MatrixCount: 1}, // P <= 0
	}
	for _, d := range cases {
		_, err := NewInstance(d)
		assert.Error(t, err)
		var st Status
		assert.ErrorAs(t, err, &st)
		assert.Equal(t, StatusOutOfRange, st)
	}
}

func TestInstance_FinalizeThenUseFails(t *testing.T) {
	inst, err := NewInstance(baseDims())
	require.NoError(t, err)
	require.NoError(t, inst.Finalize())

	err = inst.SetTipStates(0, []int{0})
	assert.ErrorIs(t, err, StatusUninitializedInstance)

	err = inst.Finalize()
	assert.Error(t, err)
}
