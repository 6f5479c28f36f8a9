// Package metrics provides bsp.Observer implementations that account for
// the cost of a run without influencing it.
//
//   - Recorder keeps in-memory totals: computation time per PE, time per
//     stage, values sent per PE and channel kind, link hops and failures.
//   - Prometheus exports the same signals as Prometheus collectors on a
//     caller-supplied registerer.
//
// Hop cost: a point-to-point value costs the topology distance between
// source and destination; a broadcast value costs p-1 hops (the length of
// the highway).
package metrics
