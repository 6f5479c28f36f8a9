// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major float64 matrix used by the
// all-pairs-shortest-paths engine, together with the serial reference kernels
// the distributed algorithms are validated against.
//
// What:
//
//   - Dense: n×m storage with bounds-checked At/Set (errors, never panics),
//     deep Copy/Clone and block extraction used to scatter data over a PE grid.
//   - MinPlusSquare: one (min, +) squaring round with predecessor tracking,
//     visiting intermediates in the same rotated order as the Fox–Otto grid
//     algorithms so results match exactly.
//   - FloydWarshall / FloydWarshallPaths: O(n³) dense APSP closure.
//   - Mul: ordinary product, the oracle for the broadcast multiplication.
//
// Numeric policy:
//
//   - +Inf is a legal value and means "no path".
//   - NaN is rejected at every write boundary (ErrNaN).
//   - Predecessor matrices carry integral vertex ids as float64; pred[i][j]==j
//     means "no path known".
//
// Determinism:
//
//   - All kernels use fixed loop orders and strict "<" relaxation, so repeated
//     runs yield bitwise-identical results.
//
// Errors:
//
//   - ErrInvalidDimensions, ErrOutOfRange, ErrDimensionMismatch, ErrNonSquare,
//     ErrNaN, ErrNilMatrix, ErrBadPredecessor. Match them with errors.Is.
package matrix
