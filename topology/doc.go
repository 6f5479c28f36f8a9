// Package topology describes the p×p grid of simulated processing elements:
// coordinates, the wrap-around rotation target and the hop distance between
// two elements under a torus or mesh interconnect.
//
// Topologies are pure and stateless. They feed cost accounting only and
// never influence the result of a computation.
package topology
