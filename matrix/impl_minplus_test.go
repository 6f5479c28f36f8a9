// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bspapsp/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sevenNode builds the D/P seed of a 7-vertex directed graph:
// 0→1(6) 0→2(2) 0→3(3) 1→4(1) 2→5(2) 2→6(1) 3→6(2) 5→1(1).
func sevenNode(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()

	const n = 7
	d, err := matrix.NewSquare(n, math.Inf(1))
	require.NoError(t, err)
	p, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, d.Set(i, i, 0))
		for j := 0; j < n; j++ {
			require.NoError(t, p.Set(i, j, float64(j)))
		}
	}
	edges := []struct {
		u, v int
		w    float64
	}{{0, 1, 6}, {0, 2, 2}, {0, 3, 3}, {1, 4, 1}, {2, 5, 2}, {2, 6, 1}, {3, 6, 2}, {5, 1, 1}}
	for _, e := range edges {
		require.NoError(t, d.Set(e.u, e.v, e.w))
		require.NoError(t, p.Set(e.u, e.v, float64(e.u)))
	}

	return d, p
}

func TestMinPlusSquare_SevenNode(t *testing.T) {
	t.Parallel()

	d, p := sevenNode(t)
	d1, p1, err := matrix.MinPlusSquare(d, p)
	require.NoError(t, err)

	row0, _ := d1.Row(0)
	assert.Equal(t, []float64{0, 6, 2, 3, 7, 4, 3}, row0)

	d2, p2, err := matrix.MinPlusSquare(d1, p1)
	require.NoError(t, err)

	inf := math.Inf(1)
	row0, _ = d2.Row(0)
	assert.Equal(t, []float64{0, 5, 2, 3, 6, 4, 3}, row0)
	pred0, _ := p2.Row(0)
	assert.Equal(t, []float64{0, 5, 0, 0, 1, 2, 2}, pred0)

	row2, _ := d2.Row(2)
	assert.Equal(t, []float64{inf, 3, 0, inf, 4, 2, 1}, row2)
	pred2, _ := p2.Row(2)
	assert.Equal(t, []float64{0, 5, 2, 3, 1, 2, 2}, pred2)

	// Inputs are left untouched.
	orig, _ := d.Row(0)
	assert.Equal(t, []float64{0, 6, 2, 3, inf, inf, inf}, orig)
}

func TestMinPlusSquare_FixedPointMatchesFloydWarshall(t *testing.T) {
	t.Parallel()

	d, p := sevenNode(t)
	fwD, fwP := d.Copy(), p.Copy()
	require.NoError(t, matrix.FloydWarshallPaths(fwD, fwP))

	var err error
	for r := 0; r < 3; r++ { // ceil(log2 7) = 3
		d, p, err = matrix.MinPlusSquare(d, p)
		require.NoError(t, err)
	}
	assert.True(t, matrix.Equal(d, fwD, 1e-9))

	again, _, err := matrix.MinPlusSquare(d, p)
	require.NoError(t, err)
	assert.True(t, matrix.Equal(d, again, 0))
}

// TestMinPlusSquare_TieBreak covers the two order rules: equal candidates go
// to the smallest offset from i, and a k==j winner restores the cell's own
// seed predecessor even after another k replaced it.
func TestMinPlusSquare_TieBreak(t *testing.T) {
	inf := math.Inf(1)
	d, err := matrix.NewFromRows([][]float64{
		{9, 1, 1, inf},
		{inf, 0, 5, 1},
		{inf, inf, 0, 1},
		{inf, inf, inf, 0},
	})
	require.NoError(t, err)
	p, err := matrix.NewFromRows([][]float64{
		{0, 0, 0, 3},
		{0, 1, 1, 1},
		{0, 1, 2, 2},
		{0, 1, 2, 3},
	})
	require.NoError(t, err)

	gotD, gotP, err := matrix.MinPlusSquare(d, p)
	require.NoError(t, err)

	row, _ := gotD.Row(0)
	assert.Equal(t, []float64{18, 1, 1, 2}, row)
	row, _ = gotP.Row(0)
	// (0,2): k=0 gives 10, k=1 gives 6, k=2 (== j) gives 1 and keeps the seed 0.
	// (0,3): k=1 and k=2 both give 2; k=1 is visited first.
	assert.Equal(t, []float64{0, 0, 0, 1}, row)
}

func TestMinPlusSquare_Errors(t *testing.T) {
	t.Parallel()

	d, _ := matrix.NewSquare(2, 0)
	p3, _ := matrix.NewSquare(3, 0)
	_, _, err := matrix.MinPlusSquare(d, p3)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.MinPlusSquare(nil, p3)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul(t *testing.T) {
	t.Parallel()

	a, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := matrix.NewFromRows([][]float64{{5, 6}, {7, 8}})
	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{19, 22}, {43, 50}}, c.ToRows())

	r, _ := matrix.NewDense(3, 1)
	_, err = matrix.Mul(a, r)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
