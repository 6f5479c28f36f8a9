package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/bspapsp/matrix"
)

// Graph is an immutable weighted graph over vertices 0..n-1.
type Graph struct {
	n        int
	directed bool
	adj      []map[int]float64 // adj[u][v] = lightest u→v weight
}

// New validates edges and builds the graph.
//
// Errors: ErrBadVertexCount, ErrVertexOutOfRange, ErrInvalidWeight, ErrNegativeWeight.
func New(n int, directed bool, edges []Edge) (*Graph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("New(n=%d): %w", n, ErrBadVertexCount)
	}
	g := &Graph{n: n, directed: directed, adj: make([]map[int]float64, n)}
	for u := range g.adj {
		g.adj[u] = make(map[int]float64)
	}

	for idx, e := range edges {
		switch {
		case e.From < 0 || e.From >= n || e.To < 0 || e.To >= n:
			return nil, fmt.Errorf("edge %d (%d→%d) with n=%d: %w", idx, e.From, e.To, n, ErrVertexOutOfRange)
		case math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0):
			return nil, fmt.Errorf("edge %d (%d→%d) weight=%v: %w", idx, e.From, e.To, e.Weight, ErrInvalidWeight)
		case e.Weight < 0:
			return nil, fmt.Errorf("edge %d (%d→%d) weight=%v: %w", idx, e.From, e.To, e.Weight, ErrNegativeWeight)
		}
		g.relax(e.From, e.To, e.Weight)
		if !directed {
			g.relax(e.To, e.From, e.Weight)
		}
	}

	return g, nil
}

func (g *Graph) relax(u, v int, w float64) {
	if old, ok := g.adj[u][v]; !ok || w < old {
		g.adj[u][v] = w
	}
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

func (g *Graph) check(v int) error {
	if v < 0 || v >= g.n {
		return fmt.Errorf("vertex %d with n=%d: %w", v, g.n, ErrVertexOutOfRange)
	}

	return nil
}

// HasEdge reports whether u→v exists. Out-of-range ids report false.
func (g *Graph) HasEdge(u, v int) bool {
	if g.check(u) != nil || g.check(v) != nil {
		return false
	}
	_, ok := g.adj[u][v]

	return ok
}

// Weight returns the weight of the lightest u→v edge.
func (g *Graph) Weight(u, v int) (float64, error) {
	if err := g.check(u); err != nil {
		return 0, err
	}
	if err := g.check(v); err != nil {
		return 0, err
	}
	w, ok := g.adj[u][v]
	if !ok {
		return 0, fmt.Errorf("%d→%d: %w", u, v, ErrEdgeNotFound)
	}

	return w, nil
}

// Neighbours returns the heads of u's outgoing edges, ascending.
func (g *Graph) Neighbours(u int) ([]int, error) {
	if err := g.check(u); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(g.adj[u]))
	for v := range g.adj[u] {
		out = append(out, v)
	}
	sort.Ints(out)

	return out, nil
}

// Edges returns every stored edge sorted by (From, To). Undirected edges are
// listed once with From <= To.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for u := 0; u < g.n; u++ {
		vs, _ := g.Neighbours(u)
		for _, v := range vs {
			if !g.directed && v < u {
				continue
			}
			out = append(out, Edge{From: u, To: v, Weight: g.adj[u][v]})
		}
	}

	return out
}

// DistanceMatrix returns the size×size seed D: 0 on the diagonal, the edge
// weight for every edge and +Inf elsewhere. Rows and columns beyond n
// describe isolated padding vertices.
func (g *Graph) DistanceMatrix(size int) (*matrix.Dense, error) {
	if size < g.n {
		return nil, fmt.Errorf("DistanceMatrix(%d) with n=%d: %w", size, g.n, ErrMatrixSize)
	}
	d, err := matrix.NewSquare(size, math.Inf(1))
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		if err = d.Set(i, i, 0); err != nil {
			return nil, err
		}
	}
	for u := 0; u < g.n; u++ {
		for v, w := range g.adj[u] {
			if u == v {
				continue
			}
			if err = d.Set(u, v, w); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// PredecessorMatrix returns the size×size seed P: P[i][j] = i when the edge
// i→j exists and j otherwise ("no path known").
func (g *Graph) PredecessorMatrix(size int) (*matrix.Dense, error) {
	if size < g.n {
		return nil, fmt.Errorf("PredecessorMatrix(%d) with n=%d: %w", size, g.n, ErrMatrixSize)
	}
	p, err := matrix.NewDense(size, size)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < size; i++ {
		for j = 0; j < size; j++ {
			pred := j
			if i != j && i < g.n && g.HasEdge(i, j) {
				pred = i
			}
			if err = p.Set(i, j, float64(pred)); err != nil {
				return nil, err
			}
		}
	}

	return p, nil
}
