// Package apsp solves all-pairs shortest paths by repeated min-plus squaring
// on the simulated BSP grid.
//
// A Solver seeds the distance matrix D (0 on the diagonal, edge weights,
// +Inf elsewhere) and the predecessor matrix P (P[i][j]=i for an edge i→j,
// j otherwise), then runs ⌈log2 n⌉ squaring rounds. Each round builds a
// fresh bsp.Manager running one of the Fox–Otto variants, so no state leaks
// between rounds. After round r, D holds the shortest distances over paths
// of at most 2^r edges.
//
// Queries:
//
//	s, _ := apsp.NewSolver(g, apsp.WithGridSize(4), apsp.WithPadding())
//	if err := s.Solve(ctx); err != nil { ... }
//	d, _ := s.Distance(0, 5)      // +Inf when unreachable
//	path, err := s.ShortestPath(0, 5)
//	if errors.Is(err, apsp.ErrNoPath) { ... }
//
// A solved Solver is read-only and safe for concurrent queries. Snapshots
// (msgpack) let a solved state be stored and served later without a graph.
//
// Errors (sentinel):
//
//	– ErrConfiguration     invalid graph, grid size or variant.
//	– ErrNotSolved         query before a successful Solve.
//	– ErrVertexOutOfRange  query with an id outside [0, n).
//	– ErrNoPath            no path between the two vertices.
//	– ErrCycleDetected     the predecessor walk does not terminate.
package apsp
