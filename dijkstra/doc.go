// Package dijkstra provides the serial single-source shortest-path reference
// (Dijkstra's algorithm) used to verify the distributed all-pairs solver.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from one source to every vertex
//     of a graph.Graph in O((V + E) log V) using a lazy-decrease-key min-heap.
//   - AllPairs runs it from every vertex and returns the n×n distance table.
//
// Key features:
//
//   - ReturnPath: if enabled, returns a predecessor slice to rebuild each path.
//   - MaxDistance: stops exploring beyond a distance cap.
//
// Conventions:
//
//   - dist[v] == +Inf for unreachable v.
//   - prev[source] == source, prev[v] == -1 for unreachable v.
//
// Negative weights cannot occur: graph.New rejects them.
package dijkstra
