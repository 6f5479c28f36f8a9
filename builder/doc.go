// SPDX-License-Identifier: MIT

// Package builder generates deterministic graph fixtures for the solver:
// rings, paths, stars, complete graphs, 4-neighbour grids and seeded
// Erdős–Rényi samples.
//
// Constructors are composed by BuildGraph. Each one appends its own block of
// vertices after the blocks of the constructors before it, so composing two
// constructors yields two disconnected components, which is the quickest
// way to produce graphs with unreachable pairs.
//
//	g, err := builder.BuildGraph(true,
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithWeightFn(builder.UniformWeightFn(1, 10))},
//		builder.RandomSparse(12, 0.3), builder.Cycle(4))
//
// Determinism: the same options, seed and constructor order always give the
// same edge list.
package builder
