// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels minimal by delegating shape/nil checks here.
//   - Return wrapped sentinels so call sites can match with errors.Is.
//
// Note:
//   - Each composite validator follows a fixed sequence (NotNil → Shape → Content).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// matrixErrorf wraps an error with the operation tag of a kernel.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Typed nil pointers (*Dense)(nil) are rejected as well.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSquare: %dx%d", m.Rows(), m.Cols()), ErrNonSquare)
	}

	return nil
}

// ValidatePredecessors checks that pred is square, matches dist and every
// entry is an integral vertex id in [0, n).
//
// Complexity: O(n²).
func ValidatePredecessors(dist, pred *Dense) error {
	if err := ValidateSquare(dist); err != nil {
		return err
	}
	if err := ValidateSquare(pred); err != nil {
		return err
	}
	if err := ValidateSameShape(dist, pred); err != nil {
		return err
	}
	n := pred.r
	for i, v := range pred.data {
		if v < 0 || v >= float64(n) || v != math.Trunc(v) {
			return validatorErrorf(fmt.Sprintf("ValidatePredecessors: (%d,%d)=%g", i/n, i%n, v), ErrBadPredecessor)
		}
	}

	return nil
}
