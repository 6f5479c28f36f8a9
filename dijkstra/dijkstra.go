package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/bspapsp/graph"
)

// Dijkstra computes shortest distances from Options.Source to every vertex of g.
//
// Returns:
//
//   - dist: dist[v] is the shortest distance, +Inf if unreachable.
//   - prev: predecessor slice if ReturnPath (nil otherwise).
//   - err:  ErrNilGraph, ErrVertexNotFound or ErrBadMaxDistance.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *graph.Graph, opts ...Option) ([]float64, []int, error) {
	// 1) Build Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if cfg.Source < 0 || cfg.Source >= g.N() {
		return nil, nil, fmt.Errorf("source %d with n=%d: %w", cfg.Source, g.N(), ErrVertexNotFound)
	}
	if math.IsNaN(cfg.MaxDistance) || cfg.MaxDistance < 0 {
		return nil, nil, ErrBadMaxDistance
	}

	// 3) Prepare state and run.
	n := g.N()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}

	return r.dist, r.prev, nil
}

// AllPairs runs Dijkstra from every vertex; dist[i][j] is the i→j distance.
func AllPairs(g *graph.Graph) ([][]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	out := make([][]float64, g.N())
	var err error
	for s := 0; s < g.N(); s++ {
		if out[s], _, err = Dijkstra(g, Source(s)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *graph.Graph
	options Options
	dist    []float64
	prev    []int
	visited []bool
	pq      nodePQ
}

// init sets dist=+Inf, prev=-1 and seeds the heap with the source.
func (r *runner) init() {
	for v := range r.dist {
		r.dist[v] = math.Inf(1)
		r.prev[v] = -1
	}
	src := r.options.Source
	r.dist[src] = 0
	r.prev[src] = src

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: src, dist: 0})
}

// process repeatedly extracts the closest unvisited vertex and relaxes its edges.
func (r *runner) process() error {
	var item *nodeItem
	for r.pq.Len() > 0 {
		item = heap.Pop(&r.pq).(*nodeItem)

		// Skip stale heap entries.
		if r.visited[item.id] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.id] = true

		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax improves the distances of u's neighbours through u.
func (r *runner) relax(u int) error {
	neighbours, err := r.g.Neighbours(u)
	if err != nil {
		return fmt.Errorf("dijkstra: neighbours of %d: %w", u, err)
	}

	var w, newDist float64
	for _, v := range neighbours {
		if w, err = r.g.Weight(u, v); err != nil {
			return fmt.Errorf("dijkstra: weight %d→%d: %w", u, v, err)
		}
		newDist = r.dist[u] + w
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strictly better only, to avoid pushing duplicates on ties.
		if newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// nodeItem is a vertex with its tentative distance.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties by id for determinism.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
