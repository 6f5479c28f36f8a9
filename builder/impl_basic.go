// SPDX-License-Identifier: MIT

package builder

import "fmt"

const (
	methodCycle    = "Cycle"
	methodPath     = "Path"
	methodStar     = "Star"
	methodComplete = "Complete"
	minCycleNodes  = 3
	minPathNodes   = 2
	minStarNodes   = 2
)

// Cycle builds a ring over n ≥ 3 vertices: i → (i+1)%n. In a directed
// graph the ring runs one way only.
func Cycle(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		base := d.addVertices(n)
		for i := 0; i < n; i++ {
			d.addEdge(cfg, base+i, base+(i+1)%n)
		}

		return nil
	}
}

// Path builds a simple path over n ≥ 2 vertices: i → i+1.
func Path(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		base := d.addVertices(n)
		for i := 0; i+1 < n; i++ {
			d.addEdge(cfg, base+i, base+i+1)
		}

		return nil
	}
}

// Star builds a hub (the block's first vertex) with n-1 leaves; edges point
// from the hub outwards.
func Star(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		base := d.addVertices(n)
		for i := 1; i < n; i++ {
			d.addEdge(cfg, base, base+i)
		}

		return nil
	}
}

// Complete builds K_n (n ≥ 1): every ordered pair when directed, every
// unordered pair otherwise.
func Complete(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodComplete, n, ErrTooFewVertices)
		}
		base := d.addVertices(n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j || (!cfg.directed && j < i) {
					continue
				}
				d.addEdge(cfg, base+i, base+j)
			}
		}

		return nil
	}
}
