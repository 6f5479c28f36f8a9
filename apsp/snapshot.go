package apsp

import (
	"fmt"
	"io"

	"github.com/katalvlaran/bspapsp/matrix"
	"github.com/vmihailenco/msgpack/v5"
)

const snapshotVersion = 1

// snapshot is the msgpack layout of a solved state.
type snapshot struct {
	Version int         `msgpack:"version"`
	RunID   string      `msgpack:"run_id"`
	N       int         `msgpack:"n"`
	Rounds  int         `msgpack:"rounds"`
	Dist    [][]float64 `msgpack:"dist"`
	Pred    [][]float64 `msgpack:"pred"`
}

// WriteSnapshot encodes the solved n×n matrices to w.
func (s *Solver) WriteSnapshot(w io.Writer) error {
	d, p, err := s.Matrices()
	if err != nil {
		return err
	}
	s.mu.RLock()
	snap := snapshot{
		Version: snapshotVersion,
		RunID:   s.runID,
		N:       s.n,
		Rounds:  s.rounds,
		Dist:    d.ToRows(),
		Pred:    p.ToRows(),
	}
	s.mu.RUnlock()

	if err = msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return nil
}

// ReadSnapshot restores a solved Solver that answers Distance and
// ShortestPath queries. It has no graph and cannot Solve again.
func ReadSnapshot(r io.Reader) (*Solver, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w: %w", ErrSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d: %w", snap.Version, ErrSnapshot)
	}
	if snap.N <= 0 || len(snap.Dist) != snap.N || len(snap.Pred) != snap.N {
		return nil, fmt.Errorf("snapshot of %d vertices: %w", snap.N, ErrSnapshot)
	}
	d, err := matrix.NewFromRows(snap.Dist)
	if err != nil {
		return nil, fmt.Errorf("snapshot distances: %w: %w", ErrSnapshot, err)
	}
	p, err := matrix.NewFromRows(snap.Pred)
	if err != nil {
		return nil, fmt.Errorf("snapshot predecessors: %w: %w", ErrSnapshot, err)
	}
	if err = matrix.ValidatePredecessors(d, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	return &Solver{
		n:      snap.N,
		size:   snap.N,
		p:      snap.N,
		opts:   DefaultOptions(),
		solved: true,
		rounds: snap.Rounds,
		runID:  snap.RunID,
		dist:   d,
		pred:   p,
	}, nil
}
