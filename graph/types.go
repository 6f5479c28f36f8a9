package graph

import "errors"

// Sentinel errors for graph construction and queries.
var (
	// ErrBadVertexCount indicates a non-positive vertex count.
	ErrBadVertexCount = errors.New("graph: vertex count must be > 0")
	// ErrVertexOutOfRange indicates a vertex id outside [0, n).
	ErrVertexOutOfRange = errors.New("graph: vertex out of range")
	// ErrInvalidWeight indicates a NaN or infinite edge weight.
	ErrInvalidWeight = errors.New("graph: edge weight must be finite")
	// ErrNegativeWeight indicates a negative edge weight.
	ErrNegativeWeight = errors.New("graph: negative edge weight")
	// ErrEdgeNotFound indicates a weight lookup for a missing edge.
	ErrEdgeNotFound = errors.New("graph: edge not found")
	// ErrMatrixSize indicates a requested matrix smaller than the vertex count.
	ErrMatrixSize = errors.New("graph: matrix size smaller than vertex count")
	// ErrParse indicates a malformed edge-list line.
	ErrParse = errors.New("graph: malformed edge list")
)

// Edge is a weighted connection From → To.
type Edge struct {
	From, To int
	Weight   float64
}
