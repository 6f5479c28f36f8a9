// Package memory implements the private store owned by one simulated
// processing element. Values are addressed by (localRow, localCol, label)
// within the element's s×s block.
//
// A Private is single-owner: the engine guarantees that at most one goroutine
// touches it per stage, so it carries no locking of its own.
//
// Purpose:
//   - One flat s×s plane per label with presence bits, so unset reads fail with ErrNotFound.
//   - Offsets are checked on every access; nothing panics on bad input.
//
// Complexity quicksheet:
//   - New: O(1); Get/Set/Contains: O(1) map lookup plus index; first Set of a label: O(s²);
//     Labels: O(L log L).
package memory

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for private memory access.
var (
	// ErrBadSize indicates a non-positive block size.
	ErrBadSize = errors.New("memory: block size must be > 0")
	// ErrOutOfRange indicates a local offset outside [0, size).
	ErrOutOfRange = errors.New("memory: local offset out of range")
	// ErrNotFound indicates a read of an address that was never written.
	ErrNotFound = errors.New("memory: no value stored at address")
)

// plane holds one label's s×s values and their presence bits.
type plane struct {
	values []float64
	set    []bool
}

// Private is the local memory of one processing element.
type Private struct {
	size   int
	planes map[string]*plane
}

// New returns an empty store for an s×s block.
func New(size int) (*Private, error) {
	if size <= 0 {
		return nil, fmt.Errorf("New(%d): %w", size, ErrBadSize)
	}

	return &Private{size: size, planes: make(map[string]*plane)}, nil
}

// Size returns the block edge length s.
func (m *Private) Size() int { return m.size }

func (m *Private) offset(r, c int) (int, error) {
	if r < 0 || r >= m.size || c < 0 || c >= m.size {
		return 0, ErrOutOfRange
	}

	return r*m.size + c, nil
}

// Get reads the value at (r, c, label).
//
// Errors: ErrOutOfRange for bad offsets, ErrNotFound when never written.
func (m *Private) Get(r, c int, label string) (float64, error) {
	off, err := m.offset(r, c)
	if err != nil {
		return 0, fmt.Errorf("Get(%d,%d,%q): %w", r, c, label, err)
	}
	p, ok := m.planes[label]
	if !ok || !p.set[off] {
		return 0, fmt.Errorf("Get(%d,%d,%q): %w", r, c, label, ErrNotFound)
	}

	return p.values[off], nil
}

// Set writes v at (r, c, label), overwriting any previous value.
func (m *Private) Set(r, c int, label string, v float64) error {
	off, err := m.offset(r, c)
	if err != nil {
		return fmt.Errorf("Set(%d,%d,%q): %w", r, c, label, err)
	}
	p, ok := m.planes[label]
	if !ok {
		n := m.size * m.size
		p = &plane{values: make([]float64, n), set: make([]bool, n)}
		m.planes[label] = p
	}
	p.values[off] = v
	p.set[off] = true

	return nil
}

// Contains reports whether (r, c, label) holds a value. Bad offsets report false.
func (m *Private) Contains(r, c int, label string) bool {
	off, err := m.offset(r, c)
	if err != nil {
		return false
	}
	p, ok := m.planes[label]

	return ok && p.set[off]
}

// Labels returns the labels written so far, sorted.
func (m *Private) Labels() []string {
	out := make([]string, 0, len(m.planes))
	for l := range m.planes {
		out = append(out, l)
	}
	sort.Strings(out)

	return out
}
