// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Allow +Inf (distance "no path") while rejecting NaN at the write boundary.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Block: O(s*s).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxBlock = "Block" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps the sentinel reachable via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate a contiguous flat buffer; make() zero-fills it deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewSquare creates an n×n matrix with every entry set to fill.
// Distance matrices are usually seeded with NewSquare(n, math.Inf(1)).
//
// Errors:
//   - ErrInvalidDimensions when n<=0.
//   - ErrNaN when fill is NaN.
func NewSquare(n int, fill float64) (*Dense, error) {
	if math.IsNaN(fill) {
		return nil, ErrNaN
	}
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	if fill != 0 {
		for i := range m.data {
			m.data[i] = fill
		}
	}

	return m, nil
}

// NewFromRows builds a Dense from a rectangular [][]float64 (deep copy).
//
// Errors:
//   - ErrInvalidDimensions when rows is empty or the first row is empty.
//   - ErrDimensionMismatch when rows are ragged.
//   - ErrNaN when any entry is NaN.
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		if len(rows[i]) != m.c {
			return nil, fmt.Errorf("NewFromRows: row %d has %d columns, want %d: %w", i, len(rows[i]), m.c, ErrDimensionMismatch)
		}
		for j = 0; j < m.c; j++ {
			if math.IsNaN(rows[i][j]) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaN)
			}
			m.data[i*m.c+j] = rows[i][j]
		}
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf validates (row, col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the element at (row, col).
//
// Errors:
//   - ErrOutOfRange (wrapped with Dense.At context).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set assigns v at (row, col). ±Inf is accepted, NaN is rejected.
//
// Errors:
//   - ErrOutOfRange, ErrNaN (wrapped with Dense.Set context).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err) // wrap with context
	}
	if math.IsNaN(v) {
		return denseErrorf(ctxSet, row, col, ErrNaN)
	}
	m.data[off] = v // direct flat write

	return nil
}

// Clone returns a deep copy as the Matrix interface.
func (m *Dense) Clone() Matrix {
	return m.Copy()
}

// Copy returns a deep copy with the concrete *Dense type.
// Complexity: O(r*c).
func (m *Dense) Copy() *Dense {
	cp := make([]float64, len(m.data)) // allocate same length
	copy(cp, m.data)                   // deep copy

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Block materializes the size×size sub-matrix whose top-left corner is (r0, c0).
// Used to scatter a global matrix over a PE grid.
//
// Errors:
//   - ErrInvalidDimensions when size<=0.
//   - ErrOutOfRange when the window leaves the matrix.
func (m *Dense) Block(r0, c0, size int) (*Dense, error) {
	if size <= 0 {
		return nil, ErrInvalidDimensions
	}
	if r0 < 0 || c0 < 0 || r0+size > m.r || c0+size > m.c {
		return nil, denseErrorf(ctxBlock, r0, c0, ErrOutOfRange)
	}
	out := &Dense{r: size, c: size, data: make([]float64, size*size)}
	var i int
	for i = 0; i < size; i++ {
		copy(out.data[i*size:(i+1)*size], m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c0+size])
	}

	return out, nil
}

// Row returns a copy of row i.
//
// Errors:
//   - ErrOutOfRange when i is not a row index.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxAt, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// ToRows returns a deep copy as [][]float64, convenient for assertions and encoding.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// Equal reports whether a and b have the same shape and every pair of entries
// differs by at most eps. Infinities of the same sign compare equal.
func Equal(a, b *Dense, eps float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	var x, y float64
	for i := range a.data {
		x, y = a.data[i], b.data[i]
		if x == y { // covers matching infinities
			continue
		}
		if math.IsInf(x, 0) || math.IsInf(y, 0) || math.Abs(x-y) > eps {
			return false
		}
	}

	return true
}

// String HUMAN-READABLE dump of rows for diagnostics.
// Not for hot paths; intended for logs and debugging.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen) // open row
		base = i * m.c
		for j = 0; j < m.c; j++ { // iterate cols
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep) // separate values with comma + space
			}
		}
		b.WriteString(_fmtRowClose) // close row
	}

	return b.String()
}
