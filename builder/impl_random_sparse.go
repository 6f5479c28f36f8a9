// SPDX-License-Identifier: MIT

package builder

import "fmt"

const (
	methodRandomSparse = "RandomSparse"
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse samples an Erdős–Rényi-like graph over n ≥ 1 vertices:
// every admissible pair is included independently with probability p.
// Directed graphs consider ordered pairs (i,j), i≠j; undirected ones i<j.
// Trials run in ascending (i,j) order, so a fixed seed fixes the graph.
//
// An RNG is required for 0 < p < 1.
func RandomSparse(n int, p float64) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomSparse, n, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		base := d.addVertices(n)
		for i := 0; i < n; i++ {
			j := 0
			if !cfg.directed {
				j = i + 1
			}
			for ; j < n; j++ {
				if i == j {
					continue
				}
				// p ∈ {0,1} is decided without touching the RNG.
				if p == probMax || (p > probMin && cfg.rng.Float64() < p) {
					d.addEdge(cfg, base+i, base+j)
				}
			}
		}

		return nil
	}
}
