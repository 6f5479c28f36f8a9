// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Canonical dense APSP (Floyd–Warshall) with deterministic loop order.
//   - Serves as the serial reference the distributed squaring is checked against.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opFloydWarshall      = "FloydWarshall"
	opFloydWarshallPaths = "FloydWarshallPaths"
)

// floydWarshallInPlace runs the APSP closure on d; when p is non-nil the
// predecessor matrix is relaxed alongside (p[i][j] = p[k][j] on improvement).
//
// Loop order is fixed (k → i → j) for deterministic accumulation.
// Time: O(n^3); Extra space: O(1).
func floydWarshallInPlace(d, p *Dense) {
	n := d.r

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	data := d.data

	for k = 0; k < n; k++ { // outer: intermediate vertex k
		baseK = k * n
		for i = 0; i < n; i++ { // middle: source vertex i
			ik = data[i*n+k]
			if math.IsInf(ik, 1) { // i cannot reach k
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ { // inner: destination vertex j
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] { // strict improvement only
					data[baseI+j] = cand
					if p != nil {
						p.data[baseI+j] = p.data[baseK+j]
					}
				}
			}
		}
	}
}

// FloydWarshall computes all-pairs shortest path lengths in-place on m.
//
// Contract:
//   - m must be square (n×n).
//   - +Inf denotes "no edge" off-diagonal; the diagonal MUST be 0.
//
// Complexity: Time O(n^3), Extra space O(1).
func FloydWarshall(m Matrix) error {
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opFloydWarshall, err)
	}

	// Fast-path: direct dense traversal.
	if d, ok := m.(*Dense); ok {
		floydWarshallInPlace(d, nil)

		return nil
	}

	// Generic interface fallback: work on a dense copy and write back.
	n := m.Rows()
	d, err := NewDense(n, n)
	if err != nil {
		return matrixErrorf(opFloydWarshall, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return matrixErrorf(opFloydWarshall, err)
			}
			d.data[i*n+j] = v
		}
	}
	floydWarshallInPlace(d, nil)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if err = m.Set(i, j, d.data[i*n+j]); err != nil {
				return matrixErrorf(opFloydWarshall, err)
			}
		}
	}

	return nil
}

// FloydWarshallPaths relaxes dist and pred in-place. pred uses the
// predecessor convention of the solver: pred[i][j] is the vertex preceding
// j on the best known i→j path, and pred[i][j]==j means "no path known".
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrBadPredecessor.
func FloydWarshallPaths(dist, pred *Dense) error {
	if err := ValidatePredecessors(dist, pred); err != nil {
		return matrixErrorf(opFloydWarshallPaths, err)
	}
	floydWarshallInPlace(dist, pred)

	return nil
}
