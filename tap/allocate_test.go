package tap_test

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/ThomasPluck/wobblchip/tap"
	"github.com/ThomasPluck/wobblchip/wobbletest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var andWeights = tap.Weights{
	{0, -2, 4, 1},
	{-2, 0, 4, 1},
	{4, 4, 0, -2},
	{1, 1, -2, 0},
}

func TestAllocate_pairs(t *testing.T) {
	td := []struct {
		name   string
		stages int
		w      tap.Weights
		want   []tap.Entry
	}{
		{"bistable", 3, tap.Weights{{0, -2}, {-2, 0}}, []tap.Entry{
			{tap.Pair{I: 0, J: 1}, tap.Coupling{TapI: 0, TapJ: 1, Strength: 2}},
		}},
		{"synchronizing", 3, tap.Weights{{0, 1}, {1, 0}}, []tap.Entry{
			{tap.Pair{I: 0, J: 1}, tap.Coupling{TapI: 0, TapJ: 0, Strength: 1}},
		}},
		{"single_stage", 1, tap.Weights{{0, 3}, {3, 0}}, []tap.Entry{
			{tap.Pair{I: 0, J: 1}, tap.Coupling{TapI: 0, TapJ: 0, Strength: 3}},
		}},
		{"uncoupled", 4, tap.Weights{{0, 0}, {0, 0}}, []tap.Entry{}},
		{"empty", 4, tap.Weights{}, []tap.Entry{}},
		{"and", 9, andWeights, []tap.Entry{
			{tap.Pair{I: 0, J: 1}, tap.Coupling{TapI: 0, TapJ: 1, Strength: 2}},
			{tap.Pair{I: 0, J: 2}, tap.Coupling{TapI: 1, TapJ: 1, Strength: 4}},
			{tap.Pair{I: 0, J: 3}, tap.Coupling{TapI: 2, TapJ: 0, Strength: 1}},
			{tap.Pair{I: 1, J: 2}, tap.Coupling{TapI: 0, TapJ: 0, Strength: 4}},
			{tap.Pair{I: 1, J: 3}, tap.Coupling{TapI: 2, TapJ: 2, Strength: 1}},
			{tap.Pair{I: 2, J: 3}, tap.Coupling{TapI: 2, TapJ: 1, Strength: 2}},
		}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			a, err := tap.Allocate(d.stages, d.w)
			require.NoError(t, err)
			assert.Equal(t, d.want, a.Entries())
			wobbletest.CheckAssignment(t, d.stages, d.w, a)
		})
	}
}

func TestAllocate_and(t *testing.T) {
	a, err := tap.Allocate(9, andWeights)
	require.NoError(t, err)
	assert.Equal(t, 6, a.Len())
	assert.Equal(t, andWeights.Couplings(), a.Len())
	for n := 0; n < 4; n++ {
		assert.Equal(t, 3, a.Used(n), "node %d", n)
		assert.False(t, a.Claimed(n, 8), "node %d", n)
	}
	c, ok := a.Get(3, 2)
	require.True(t, ok)
	assert.Equal(t, tap.Coupling{TapI: 2, TapJ: 1, Strength: 2}, c)
	_, ok = a.Get(0, 0)
	assert.False(t, ok)
	assert.Equal(t, "0.0-1.1/2 0.1-2.1/4 0.2-3.0/1 1.0-2.0/4 1.2-3.2/1 2.2-3.1/2", a.String())
}

func TestAssignment_bounds(t *testing.T) {
	w := tap.Weights{{0, 1}, {1, 0}}
	a, err := tap.Allocate(3, w)
	require.NoError(t, err)
	require.True(t, a.Claimed(1, 0))
	// node 0, tap 3 would alias node 1, tap 0
	assert.False(t, a.Claimed(0, 3))
	assert.False(t, a.Claimed(0, -1))
	assert.False(t, a.Claimed(2, 0))
	assert.False(t, a.Claimed(-1, 2))
	assert.Equal(t, 1, a.Used(1))
	assert.Equal(t, 0, a.Used(2))
	assert.Equal(t, 0, a.Used(-1))
}

func TestAllocate_capacity(t *testing.T) {
	td := []struct {
		name   string
		stages int
		w      tap.Weights
		want   tap.CapacityError
	}{
		{"and_2", 2, andWeights, tap.CapacityError{I: 0, J: 3, Node: 0, Stages: 2}},
		// node 1 has a single odd tap for a bistable coupling to a tap 0
		{"parity", 1, tap.Weights{{0, -1}, {-1, 0}}, tap.CapacityError{I: 0, J: 1, Node: 1, Stages: 1}},
		{"second_side", 5, tap.Weights{
			{0, -2, -2, 2, 4, -1},
			{-2, 0, -2, 2, 4, -1},
			{-2, -2, 0, 2, 4, -1},
			{2, 2, 2, 0, -4, 1},
			{4, 4, 4, -4, 0, 2},
			{-1, -1, -1, 1, 2, 0},
		}, tap.CapacityError{I: 2, J: 4, Node: 4, Stages: 5}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			a, err := tap.Allocate(d.stages, d.w)
			assert.Nil(t, a)
			var ce *tap.CapacityError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, d.want, *ce)
		})
	}
}

func TestAllocate_config(t *testing.T) {
	td := []struct {
		name   string
		stages int
		w      tap.Weights
	}{
		{"asymmetric", 9, tap.Weights{{0, 1}, {-1, 0}}},
		{"not_square", 9, tap.Weights{{0, 1, 0}, {1, 0, 0}}},
		{"ragged", 9, tap.Weights{{0, 1}, {1}}},
		{"diagonal", 9, tap.Weights{{1, 1}, {1, 0}}},
		{"zero_stages", 0, tap.Weights{{0, 1}, {1, 0}}},
		{"negative_stages", -3, tap.Weights{}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			a, err := tap.Allocate(d.stages, d.w)
			assert.Nil(t, a)
			var ce *tap.ConfigError
			assert.True(t, errors.As(err, &ce), "got %v", err)
		})
	}
}

func TestAllocate_transpose(t *testing.T) {
	a, err := tap.Allocate(9, andWeights)
	require.NoError(t, err)
	b, err := tap.Allocate(9, andWeights.Transpose())
	require.NoError(t, err)
	assert.Equal(t, a.Entries(), b.Entries())
}

func TestAllocate_quick(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	f := func(n, stages uint8, density uint8) bool {
		nodes := int(n%8) + 1
		st := int(stages%12) + 1
		w := wobbletest.RandomWeights(r, nodes, 5, float64(density)/255)
		a, err := tap.Allocate(st, w)
		if err != nil {
			var ce *tap.CapacityError
			return errors.As(err, &ce) && a == nil
		}
		wobbletest.CheckAssignment(t, st, w, a)

		// determinism
		b, err := tap.Allocate(st, w)
		return err == nil && a.String() == b.String()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestParity(t *testing.T) {
	td := []struct {
		w, tapI, want int
	}{
		{-2, 0, 1},
		{-2, 1, 0},
		{-2, 4, 1},
		{1, 0, 0},
		{1, 3, 1},
		{4, 6, 0},
	}
	for _, d := range td {
		assert.Equal(t, d.want, tap.Parity(d.w, d.tapI), "Parity(%d, %d)", d.w, d.tapI)
	}
}

func TestWeights(t *testing.T) {
	assert.NoError(t, andWeights.Validate())
	assert.Equal(t, 6, andWeights.Couplings())
	assert.Equal(t, 3, andWeights.Degree(2))
	assert.Equal(t, tap.Weights{{1, 3}, {2, 4}}, tap.Weights{{1, 2}, {3, 4}}.Transpose())
	assert.Equal(t, tap.Pair{I: 1, J: 4}, tap.MakePair(4, 1))
}
