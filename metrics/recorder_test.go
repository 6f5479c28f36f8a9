package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/katalvlaran/bspapsp/apsp"
	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/graph"
	"github.com/katalvlaran/bspapsp/metrics"
	"github.com/katalvlaran/bspapsp/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c(r, col int) topology.Coord { return topology.Coord{Row: r, Col: col} }

func sampleTraffic() comm.Traffic {
	return comm.Traffic{Transfers: []comm.Transfer{
		{Kind: comm.PointToPoint, Source: c(0, 0), Dest: c(2, 0), Values: 3},
		{Kind: comm.PointToPoint, Source: c(1, 1), Dest: c(0, 1), Values: 2},
		{Kind: comm.RowBroadcast, Source: c(1, 2), Dest: c(1, 2), Values: 4},
		{Kind: comm.ColBroadcast, Source: c(2, 2), Dest: c(2, 2), Values: 1},
	}}
}

func TestHopCost(t *testing.T) {
	tr := sampleTraffic()
	// Torus p=3: (0,0)->(2,0) is one hop around the ring.
	assert.Equal(t, 3*1+2*1+4*2+1*2, metrics.HopCost(tr, topology.Torus{P: 3}, 3))
	// Mesh: (0,0)->(2,0) is two hops.
	assert.Equal(t, 3*2+2*1+4*2+1*2, metrics.HopCost(tr, topology.Mesh{}, 3))
	assert.Zero(t, metrics.HopCost(comm.Traffic{}, topology.Mesh{}, 3))
}

func TestRecorderAccumulates(t *testing.T) {
	rec := metrics.NewRecorder(topology.Torus{P: 3}, 3)

	rec.StageFinished(c(0, 0), bsp.Computation, 0, 2*time.Millisecond, nil)
	rec.StageFinished(c(0, 0), bsp.Computation, 1, 3*time.Millisecond, nil)
	rec.StageFinished(c(1, 1), bsp.Computation, 0, 4*time.Millisecond, nil)
	rec.StageFinished(c(1, 1), bsp.CommunicationBefore, 0, time.Millisecond, errors.New("boom"))
	rec.Flushed(1, bsp.CommunicationBefore, sampleTraffic())
	rec.Flushed(2, bsp.CommunicationAfter, sampleTraffic())

	assert.Equal(t, 5*time.Millisecond, rec.Computation(c(0, 0)))
	assert.Equal(t, 6, rec.Sent(c(0, 0), comm.PointToPoint))
	assert.Equal(t, 8, rec.Sent(c(1, 2), comm.RowBroadcast))
	assert.Zero(t, rec.Sent(c(1, 2), comm.PointToPoint))

	s := rec.Summary()
	assert.Equal(t, 2, s.Supersteps)
	assert.Equal(t, 1, s.Failures)
	assert.Equal(t, 2*(3+2+8+2), s.Hops)
	assert.Equal(t, map[comm.Kind]int{comm.PointToPoint: 10, comm.RowBroadcast: 8, comm.ColBroadcast: 2}, s.SentByKind)
	assert.Equal(t, 9*time.Millisecond, s.StageTotals[bsp.Computation])
	assert.Equal(t, time.Millisecond, s.StageTotals[bsp.CommunicationBefore])
	assert.Equal(t, c(0, 0), s.MaxComputationPE)
	assert.Equal(t, 5*time.Millisecond, s.MaxComputation)

	// Summary is a copy.
	s.SentByKind[comm.PointToPoint] = 0
	assert.Equal(t, 10, rec.Summary().SentByKind[comm.PointToPoint])
}

func TestRecorderFoxOttoTraffic(t *testing.T) {
	g, err := graph.New(7, true, []graph.Edge{
		{From: 0, To: 1, Weight: 6}, {From: 0, To: 2, Weight: 2}, {From: 0, To: 3, Weight: 3},
		{From: 1, To: 4, Weight: 1}, {From: 2, To: 5, Weight: 2}, {From: 2, To: 6, Weight: 1},
		{From: 3, To: 6, Weight: 2}, {From: 5, To: 1, Weight: 1},
	})
	require.NoError(t, err)

	rec := metrics.NewRecorder(topology.Torus{P: 7}, 7)
	s, err := apsp.NewSolver(g, apsp.WithObserver(rec), apsp.WithVariant(apsp.VariantFoxOtto))
	require.NoError(t, err)
	require.NoError(t, s.Solve(context.Background()))

	sum := rec.Summary()
	// 3 rounds × 7 phases: each phase one row broadcast per grid row and
	// a northward rotation of B and P by every PE.
	assert.Equal(t, 42, sum.Supersteps)
	assert.Equal(t, 3*7*7, sum.SentByKind[comm.RowBroadcast])
	assert.Equal(t, 3*7*49*2, sum.SentByKind[comm.PointToPoint])
	assert.Zero(t, sum.SentByKind[comm.ColBroadcast])
	assert.Equal(t, 3*7*49*2+3*7*7*6, sum.Hops)
	assert.Len(t, sum.ComputationByPE, 49)
	assert.Zero(t, sum.Failures)
}
