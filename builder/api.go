// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/bspapsp/graph"
)

// draft collects vertices and edges while constructors run.
type draft struct {
	n     int
	edges []graph.Edge
}

// addVertices reserves k new vertices and returns the first index.
func (d *draft) addVertices(k int) int {
	base := d.n
	d.n += k

	return base
}

func (d *draft) addEdge(cfg builderConfig, u, v int) {
	d.edges = append(d.edges, graph.Edge{From: u, To: v, Weight: cfg.weightFn(cfg.rng)})
}

// Constructor appends one block of vertices and its edges to the draft.
// Constructors validate parameters first and never panic.
type Constructor func(d *draft, cfg builderConfig) error

// BuildGraph runs cons in order and returns the resulting graph.
//
// Errors:
//   - ErrConstructFailed for a nil constructor or when no vertex was added.
//   - Any constructor sentinel, wrapped as "BuildGraph: %w".
func BuildGraph(directed bool, bopts []BuilderOption, cons ...Constructor) (*graph.Graph, error) {
	cfg := newBuilderConfig(directed, bopts...)
	d := &draft{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	if d.n == 0 {
		return nil, fmt.Errorf("BuildGraph: no vertices: %w", ErrConstructFailed)
	}

	g, err := graph.New(d.n, directed, d.edges)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w: %w", ErrConstructFailed, err)
	}

	return g, nil
}
