// SPDX-License-Identifier: MIT

package builder

import "fmt"

const methodGrid = "Grid"

// Grid builds a rows×cols 4-neighbour lattice in row-major order: vertex
// r*cols+c links to its right and lower neighbours, and in a directed graph
// also back to them, so every grid is traversable in both directions.
func Grid(rows, cols int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if rows < 1 || cols < 1 {
			return fmt.Errorf("%s: rows=%d cols=%d: %w", methodGrid, rows, cols, ErrTooFewVertices)
		}
		base := d.addVertices(rows * cols)
		link := func(u, v int) {
			d.addEdge(cfg, base+u, base+v)
			if cfg.directed {
				d.addEdge(cfg, base+v, base+u)
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					link(u, u+1)
				}
				if r+1 < rows {
					link(u, u+cols)
				}
			}
		}

		return nil
	}
}
