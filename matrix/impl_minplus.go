// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Serial reference kernels for one min-plus squaring round and the plain product.
//   - The k-order and tie-break match the grid algorithms exactly, so results
//     can be compared bit-for-bit, predecessors included.
//
// Contract:
//   - dist uses +Inf for "no path"; pred[i][j]==j means "no path known".

package matrix

import "math"

const (
	opMinPlusSquare = "MinPlusSquare"
	opMul           = "Mul"
)

// MinPlusSquare computes one repeated-squaring round D' = D ⊗ D over the
// (min, +) semiring and the matching predecessor matrix.
//
// For every (i, j) the intermediates are visited in the order k=(i+l) mod n,
// l=0..n-1, and a candidate D[i][k]+D[k][j] replaces the running best only
// when strictly smaller, so ties go to the smallest rotation offset l. The
// winner's P[k][j] becomes pred'[i][j], except for k==j where the cell keeps
// its own P[i][j].
//
// Inputs are not mutated. Complexity: Time O(n^3), Space O(n^2).
func MinPlusSquare(dist, pred *Dense) (*Dense, *Dense, error) {
	if err := ValidatePredecessors(dist, pred); err != nil {
		return nil, nil, matrixErrorf(opMinPlusSquare, err)
	}

	n := dist.r
	outD, _ := NewSquare(n, math.Inf(1))
	outP := pred.Copy()

	var (
		i, j, l, k int
		best, cand float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			best = math.Inf(1)
			for l = 0; l < n; l++ {
				k = (i + l) % n
				cand = dist.data[i*n+k] + dist.data[k*n+j]
				if cand < best {
					best = cand
					if k != j {
						outP.data[i*n+j] = pred.data[k*n+j]
					} else {
						outP.data[i*n+j] = pred.data[i*n+j]
					}
				}
			}
			outD.data[i*n+j] = best
		}
	}

	return outD, outP, nil
}

// Mul returns the ordinary matrix product a×b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when a.Cols() != b.Rows().
// Complexity: O(r*c*k).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	out, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var aik float64
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ { // i-k-j order keeps the inner loop contiguous
			aik = a.data[i*a.c+k]
			for j = 0; j < b.c; j++ {
				out.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}
