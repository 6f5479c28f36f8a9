package matmul_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/matmul"
	"github.com/katalvlaran/bspapsp/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed returns D/P for n vertices where roughly density of the ordered pairs
// carry an edge with an integral weight in [1, maxW]. Small maxW makes
// equal-weight paths common.
func seed(t *testing.T, n int, density float64, maxW int, rng *rand.Rand) (*matrix.Dense, *matrix.Dense) {
	t.Helper()

	d, err := matrix.NewSquare(n, math.Inf(1))
	require.NoError(t, err)
	p, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.NoError(t, p.Set(i, j, float64(j)))
			switch {
			case i == j:
				require.NoError(t, d.Set(i, j, 0))
			case rng.Float64() < density:
				require.NoError(t, d.Set(i, j, float64(1+rng.Intn(maxW))))
				require.NoError(t, p.Set(i, j, float64(i)))
			}
		}
	}

	return d, p
}

func sevenNode(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()

	inf := math.Inf(1)
	d, err := matrix.NewFromRows([][]float64{
		{0, 6, 2, 3, inf, inf, inf},
		{inf, 0, inf, inf, 1, inf, inf},
		{inf, inf, 0, inf, inf, 2, 1},
		{inf, inf, inf, 0, inf, inf, 2},
		{inf, inf, inf, inf, 0, inf, inf},
		{inf, 1, inf, inf, inf, 0, inf},
		{inf, inf, inf, inf, inf, inf, 0},
	})
	require.NoError(t, err)
	p, err := matrix.NewFromRows([][]float64{
		{0, 0, 0, 0, 4, 5, 6},
		{0, 1, 2, 3, 1, 5, 6},
		{0, 1, 2, 3, 4, 2, 2},
		{0, 1, 2, 3, 4, 5, 3},
		{0, 1, 2, 3, 4, 5, 6},
		{0, 5, 2, 3, 4, 5, 6},
		{0, 1, 2, 3, 4, 5, 6},
	})
	require.NoError(t, err)

	return d, p
}

func square(t *testing.T, factory bsp.Factory, p int, d, pred *matrix.Dense) (*matrix.Dense, *matrix.Dense) {
	t.Helper()

	m, err := bsp.NewManager(d.Rows(), p, matmul.Phases(p), map[string]*matrix.Dense{
		matmul.LabelA: d,
		matmul.LabelB: d,
		matmul.LabelP: pred,
	}, factory)
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))

	dist, err := m.Result(matmul.LabelDist)
	require.NoError(t, err)
	next, err := m.Result(matmul.LabelPred)
	require.NoError(t, err)

	return dist, next
}

func TestFoxOttoMatchesSerialRound(t *testing.T) {
	d, p := sevenNode(t)
	wantD, wantP, err := matrix.MinPlusSquare(d, p)
	require.NoError(t, err)

	gotD, gotP := square(t, matmul.FoxOtto(), 7, d, p)
	assert.Equal(t, wantD.ToRows(), gotD.ToRows())
	assert.Equal(t, wantP.ToRows(), gotP.ToRows())
}

func TestFoxOttoTwoRoundsSevenNode(t *testing.T) {
	d, p := sevenNode(t)
	for round := 0; round < 2; round++ {
		d, p = square(t, matmul.FoxOtto(), 7, d, p)
	}

	inf := math.Inf(1)
	row, _ := d.Row(0)
	assert.Equal(t, []float64{0, 5, 2, 3, 6, 4, 3}, row)
	row, _ = p.Row(0)
	assert.Equal(t, []float64{0, 5, 0, 0, 1, 2, 2}, row)
	row, _ = d.Row(2)
	assert.Equal(t, []float64{inf, 3, 0, inf, 4, 2, 1}, row)
	row, _ = p.Row(2)
	assert.Equal(t, []float64{0, 5, 2, 3, 1, 2, 2}, row)
}

func TestGeneralisedBlockEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		d, p := seed(t, 12, 0.3, 3, rng)
		wantD, wantP, err := matrix.MinPlusSquare(d, p)
		require.NoError(t, err)

		// Every grid, one PE per entry included, picks the same winner on ties.
		for _, grid := range []int{1, 2, 3, 4, 6, 12} {
			gotD, gotP := square(t, matmul.GeneralisedFoxOtto(), grid, d, p)
			assert.Equal(t, wantD.ToRows(), gotD.ToRows(), "trial %d p=%d", trial, grid)
			assert.Equal(t, wantP.ToRows(), gotP.ToRows(), "trial %d p=%d", trial, grid)
		}
		gotD, gotP := square(t, matmul.FoxOtto(), 12, d, p)
		assert.Equal(t, wantD.ToRows(), gotD.ToRows(), "trial %d fox-otto", trial)
		assert.Equal(t, wantP.ToRows(), gotP.ToRows(), "trial %d fox-otto", trial)
	}
}

func TestEqualWeightPathsSamePredecessor(t *testing.T) {
	// 3→0→1 and 3→2→1 both weigh 3.
	inf := math.Inf(1)
	d, err := matrix.NewFromRows([][]float64{
		{0, 1, inf, inf},
		{inf, 0, inf, inf},
		{inf, 1, 0, inf},
		{2, inf, 2, 0},
	})
	require.NoError(t, err)
	p, err := matrix.NewFromRows([][]float64{
		{0, 0, 2, 3},
		{0, 1, 2, 3},
		{0, 2, 2, 3},
		{3, 1, 3, 3},
	})
	require.NoError(t, err)

	for _, grid := range []int{1, 2, 4} {
		cur, pred := d, p
		for round := 0; round < 2; round++ {
			cur, pred = square(t, matmul.GeneralisedFoxOtto(), grid, cur, pred)
		}
		row, _ := cur.Row(3)
		assert.Equal(t, []float64{2, 3, 2, 0}, row, "p=%d", grid)
		row, _ = pred.Row(3)
		assert.Equal(t, []float64{3, 0, 3, 3}, row, "p=%d", grid)
	}
}

func TestGeneralisedConvergesToFloydWarshall(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d, p := seed(t, 12, 0.2, 9, rng)
	fw := d.Copy()
	require.NoError(t, matrix.FloydWarshall(fw))

	for _, grid := range []int{2, 3, 4, 6} {
		cur, pred := d, p
		for round := 0; round < 4; round++ { // ceil(log2 12)
			cur, pred = square(t, matmul.GeneralisedFoxOtto(), grid, cur, pred)
		}
		assert.True(t, matrix.Equal(fw, cur, 1e-5), "p=%d", grid)
	}
}

func TestGridMismatch(t *testing.T) {
	d, p := sevenNode(t)
	initial := map[string]*matrix.Dense{matmul.LabelA: d, matmul.LabelB: d, matmul.LabelP: p}

	tests := []struct {
		name    string
		p, k    int
		factory bsp.Factory
	}{
		{"fox-otto on a coarse grid", 1, 1, matmul.FoxOtto()},
		{"fox-otto with too few phases", 7, 3, matmul.FoxOtto()},
		{"generalised with wrong phases", 7, 1, matmul.GeneralisedFoxOtto()},
		{"multiply with wrong phases", 7, 2, matmul.BroadcastMultiply()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := bsp.NewManager(7, tc.p, tc.k, initial, tc.factory)
			require.ErrorIs(t, err, bsp.ErrConfiguration)
			require.ErrorIs(t, err, matmul.ErrGridMismatch)
		})
	}
}

func TestBroadcastMultiplyMatchesMul(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const n = 6
	a, _ := matrix.NewDense(n, n)
	b, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.NoError(t, a.Set(i, j, float64(rng.Intn(10)-5)))
			require.NoError(t, b.Set(i, j, float64(rng.Intn(10)-5)))
		}
	}
	want, err := matrix.Mul(a, b)
	require.NoError(t, err)

	for _, p := range []int{1, 2, 3, 6} {
		m, err := bsp.NewManager(n, p, matmul.Phases(p), map[string]*matrix.Dense{
			matmul.LabelA: a,
			matmul.LabelB: b,
		}, matmul.BroadcastMultiply())
		require.NoError(t, err)
		require.NoError(t, m.Run(context.Background()))

		got, err := m.Result(matmul.LabelC)
		require.NoError(t, err)
		assert.Equal(t, want.ToRows(), got.ToRows(), "p=%d", p)
	}
}

func TestMissingInputIsWorkerFailure(t *testing.T) {
	d, _ := sevenNode(t)
	m, err := bsp.NewManager(7, 7, 7, map[string]*matrix.Dense{matmul.LabelA: d}, matmul.FoxOtto())
	require.NoError(t, err)

	err = m.Run(context.Background())
	require.ErrorIs(t, err, bsp.ErrWorkerFailure)
}
