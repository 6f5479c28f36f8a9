// Package bspapsp computes all-pairs shortest paths by repeated min-plus
// squaring of the distance matrix on a simulated bulk-synchronous (BSP)
// grid of processing elements.
//
// Layout:
//
//	matrix/   – dense row-major matrices, serial min-plus and Floyd–Warshall
//	topology/ – PE coordinates, torus and mesh hop distances
//	memory/   – labelled private memory of one PE
//	comm/     – the channel arbiter: point-to-point and row/column highways
//	bsp/      – PEs, the superstep manager and engine observers
//	matmul/   – Fox–Otto, generalised Fox–Otto and broadcast multiply workers
//	graph/    – weighted graphs and the .cedge reader
//	dijkstra/ – serial single-source oracle
//	apsp/     – the solver: rounds, queries, path reconstruction, snapshots
//	metrics/  – traffic and timing recorders, Prometheus export
//	cmd/apsp  – command-line front end
//
// Quick start:
//
//	g, _ := graph.New(3, true, []graph.Edge{{From: 0, To: 1, Weight: 2}, {From: 1, To: 2, Weight: 3}})
//	s, _ := apsp.NewSolver(g)
//	_ = s.Solve(ctx)
//	d, _ := s.Distance(0, 2)       // 5
//	path, _ := s.ShortestPath(0, 2) // [0 1 2]
package bspapsp
