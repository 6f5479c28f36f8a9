package apsp

import (
	"fmt"
	"math"
)

func (s *Solver) checkQuery(i, j int) error {
	if !s.solved {
		return ErrNotSolved
	}
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		return fmt.Errorf("(%d,%d) with n=%d: %w", i, j, s.n, ErrVertexOutOfRange)
	}

	return nil
}

// Distance returns the shortest i→j distance, +Inf when unreachable.
func (s *Solver) Distance(i, j int) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkQuery(i, j); err != nil {
		return 0, err
	}

	return s.dist.At(i, j)
}

// ShortestPath returns the vertices of a shortest i→j path, both ends
// included. i==j yields [i].
//
// Errors: ErrNotSolved, ErrVertexOutOfRange, ErrNoPath when j is unreachable,
// ErrCycleDetected when the predecessor walk does not reach i.
func (s *Solver) ShortestPath(i, j int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkQuery(i, j); err != nil {
		return nil, err
	}
	if i == j {
		return []int{i}, nil
	}

	prev, err := s.predOf(i, j)
	if err != nil {
		return nil, err
	}
	if prev == j {
		return nil, fmt.Errorf("%d→%d: %w", i, j, ErrNoPath)
	}

	// Walk backwards from j; a shortest path has at most n vertices.
	rev := []int{j}
	cur := j
	for {
		prev, err = s.predOf(i, cur)
		if err != nil {
			return nil, err
		}
		if prev == cur {
			return nil, fmt.Errorf("%d→%d: vertex %d is its own predecessor: %w", i, j, cur, ErrCycleDetected)
		}
		rev = append(rev, prev)
		if prev == i {
			break
		}
		if len(rev) > s.n {
			return nil, fmt.Errorf("%d→%d: walk exceeds %d vertices: %w", i, j, s.n, ErrCycleDetected)
		}
		cur = prev
	}

	path := make([]int, len(rev))
	for k, v := range rev {
		path[len(rev)-1-k] = v
	}

	return path, nil
}

// predOf reads pred[i][v] as a vertex id.
func (s *Solver) predOf(i, v int) (int, error) {
	f, err := s.pred.At(i, v)
	if err != nil {
		return 0, err
	}
	if f < 0 || f >= float64(s.n) || f != math.Trunc(f) {
		return 0, fmt.Errorf("pred(%d,%d)=%g: %w", i, v, f, ErrCycleDetected)
	}

	return int(f), nil
}
