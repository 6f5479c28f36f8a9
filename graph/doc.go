// Package graph holds the weighted input graph of the shortest-path solver.
//
// Vertices are the dense ids 0..n-1. A Graph is immutable after New and is
// safe for concurrent readers.
//
// Policy:
//
//   - Weights must be finite and non-negative (ErrInvalidWeight, ErrNegativeWeight).
//   - Parallel edges collapse to the lightest one.
//   - Self-loops are accepted and ignored: the distance of a vertex to itself is 0.
//   - Undirected graphs store every edge in both directions.
//
// Read parses the ".cedge" edge-list format: one edge per line,
//
//	<edge-id> <from> <to> <weight>
//
// separated by whitespace. Blank lines and lines starting with '#' are
// skipped. Vertex ids may be sparse; they are re-indexed densely in
// ascending order and the original ids are returned alongside the graph.
package graph
