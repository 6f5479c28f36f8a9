// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All routines return these sentinels (optionally wrapped with context) and
// tests check them via errors.Is. No routine panics on user-triggered input.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) when
// context is essential; callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaN signals a NaN value was offered where a number (or ±Inf) is required.
	// +Inf is a legal value: distance matrices use it for "no path".
	ErrNaN = errors.New("matrix: NaN encountered")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrBadPredecessor indicates a predecessor entry that is not a vertex id in [0, n).
	ErrBadPredecessor = errors.New("matrix: predecessor entry is not a vertex id")
)
