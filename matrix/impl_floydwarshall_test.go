// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bspapsp/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hide wraps a Matrix to mask its concrete type and force the interface fallback.
type hide struct{ matrix.Matrix }

func TestFloydWarshall_Errors(t *testing.T) {
	t.Parallel()

	err := matrix.FloydWarshall(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	ns, _ := matrix.NewDense(3, 4)
	err = matrix.FloydWarshall(ns)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	d, _ := matrix.NewSquare(2, 0)
	p, _ := matrix.NewFromRows([][]float64{{0, 1}, {0, 5}})
	err = matrix.FloydWarshallPaths(d, p)
	require.ErrorIs(t, err, matrix.ErrBadPredecessor)
}

func TestFloydWarshall_Chain(t *testing.T) {
	t.Parallel()

	inf := math.Inf(1)
	rows := [][]float64{
		{0, 1, inf, inf},
		{inf, 0, 2, inf},
		{inf, inf, 0, 3},
		{inf, inf, inf, 0},
	}
	want := [][]float64{
		{0, 1, 3, 6},
		{inf, 0, 2, 5},
		{inf, inf, 0, 3},
		{inf, inf, inf, 0},
	}

	fast, _ := matrix.NewFromRows(rows)
	require.NoError(t, matrix.FloydWarshall(fast))
	assert.Equal(t, want, fast.ToRows())

	slow, _ := matrix.NewFromRows(rows)
	require.NoError(t, matrix.FloydWarshall(hide{slow}))
	assert.Equal(t, want, slow.ToRows())
}

func TestFloydWarshallPaths_Predecessors(t *testing.T) {
	t.Parallel()

	d, p := sevenNode(t)
	require.NoError(t, matrix.FloydWarshallPaths(d, p))

	row0, _ := d.Row(0)
	assert.Equal(t, []float64{0, 5, 2, 3, 6, 4, 3}, row0)
	pred0, _ := p.Row(0)
	assert.Equal(t, []float64{0, 5, 0, 0, 1, 2, 2}, pred0)
}
