package apsp

import (
	"context"
	"fmt"
	"math/bits"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/graph"
	"github.com/katalvlaran/bspapsp/matmul"
	"github.com/katalvlaran/bspapsp/matrix"
	"github.com/sirupsen/logrus"
)

// Solver computes and serves all-pairs shortest paths of one graph.
type Solver struct {
	g    *graph.Graph
	n    int // vertices of the graph
	size int // matrix order after padding
	p    int // PEs per grid side
	opts Options

	mu     sync.RWMutex
	solved bool
	rounds int
	runID  string
	dist   *matrix.Dense // size×size
	pred   *matrix.Dense // size×size
}

// NewSolver validates the configuration against g.
//
// Errors: ErrConfiguration for a nil graph, a non-positive grid size, a grid
// size that does not divide n (without WithPadding), or a variant that
// cannot run on the resulting grid.
func NewSolver(g *graph.Graph, opts ...Option) (*Solver, error) {
	if g == nil {
		return nil, fmt.Errorf("nil graph: %w", ErrConfiguration)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := g.N()
	p := o.GridSize
	if p == 0 {
		p = n
	}
	size, err := paddedSize(n, p, o.Padding)
	if err != nil {
		return nil, err
	}
	if _, err = factoryFor(o.Variant, size, p); err != nil {
		return nil, err
	}

	return &Solver{g: g, n: n, size: size, p: p, opts: o}, nil
}

// paddedSize returns the matrix order for n vertices on a p×p grid.
func paddedSize(n, p int, padding bool) (int, error) {
	switch {
	case p <= 0:
		return 0, fmt.Errorf("grid size %d: %w", p, ErrConfiguration)
	case n%p == 0:
		return n, nil
	case !padding:
		return 0, fmt.Errorf("grid size %d does not divide %d vertices (enable padding): %w", p, n, ErrConfiguration)
	default:
		return (n/p + 1) * p, nil
	}
}

func factoryFor(v Variant, size, p int) (bsp.Factory, error) {
	switch v {
	case VariantAuto:
		if p == size {
			return matmul.FoxOtto(), nil
		}
		return matmul.GeneralisedFoxOtto(), nil
	case VariantFoxOtto:
		if p != size {
			return nil, fmt.Errorf("%s needs grid size %d, got %d: %w", v, size, p, ErrConfiguration)
		}
		return matmul.FoxOtto(), nil
	case VariantGeneralised:
		return matmul.GeneralisedFoxOtto(), nil
	default:
		return nil, fmt.Errorf("%s: %w", v, ErrConfiguration)
	}
}

// Rounds returns ⌈log2 n⌉, the squaring rounds needed for n vertices.
func Rounds(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}

// N returns the number of vertices that queries accept.
func (s *Solver) N() int { return s.n }

// GridSize returns the number of PEs per grid side.
func (s *Solver) GridSize() int { return s.p }

// Solve runs the squaring rounds. On failure the previous solved state, if
// any, is kept and nothing from the failed run is published.
func (s *Solver) Solve(ctx context.Context) error {
	if s.g == nil {
		return fmt.Errorf("solver restored from snapshot has no graph: %w", ErrConfiguration)
	}

	runID := uuid.New().String()
	log := s.opts.Logger.WithFields(logrus.Fields{"run": runID, "n": s.n, "p": s.p})
	started := time.Now()

	d, err := s.g.DistanceMatrix(s.size)
	if err != nil {
		return fmt.Errorf("seed distances: %w", err)
	}
	p, err := s.g.PredecessorMatrix(s.size)
	if err != nil {
		return fmt.Errorf("seed predecessors: %w", err)
	}

	rounds := Rounds(s.n)
	log.WithFields(logrus.Fields{"rounds": rounds, "padded": s.size}).Info("solve started")
	for r := 0; r < rounds; r++ {
		if d, p, err = s.square(ctx, log.WithField("round", r), d, p); err != nil {
			log.WithError(err).WithField("round", r).Error("solve failed")
			return fmt.Errorf("round %d: %w", r, err)
		}
	}

	s.mu.Lock()
	s.dist, s.pred = d, p
	s.rounds = rounds
	s.runID = runID
	s.solved = true
	s.mu.Unlock()

	log.WithField("elapsed", time.Since(started)).Info("solve finished")

	return nil
}

func (s *Solver) square(ctx context.Context, log logrus.FieldLogger, d, p *matrix.Dense) (*matrix.Dense, *matrix.Dense, error) {
	factory, err := factoryFor(s.opts.Variant, s.size, s.p)
	if err != nil {
		return nil, nil, err
	}
	engine := []bsp.Option{bsp.WithPoolSize(s.opts.PoolSize), bsp.WithLogger(log)}
	if s.opts.Observer != nil {
		engine = append(engine, bsp.WithObserver(s.opts.Observer))
	}

	return runRound(ctx, d, p, s.p, factory, engine)
}

// Square runs one squaring round of (dist, pred) on a p×p grid and returns
// the new matrices. Only the GridSize-independent options apply (Variant,
// PoolSize, Logger, Observer); p must divide the matrix order.
func Square(ctx context.Context, dist, pred *matrix.Dense, p int, opts ...Option) (*matrix.Dense, *matrix.Dense, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := matrix.ValidatePredecessors(dist, pred); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if _, err := paddedSize(dist.Rows(), p, false); err != nil {
		return nil, nil, err
	}
	factory, err := factoryFor(o.Variant, dist.Rows(), p)
	if err != nil {
		return nil, nil, err
	}
	engine := []bsp.Option{bsp.WithPoolSize(o.PoolSize), bsp.WithLogger(o.Logger)}
	if o.Observer != nil {
		engine = append(engine, bsp.WithObserver(o.Observer))
	}

	return runRound(ctx, dist, pred, p, factory, engine)
}

func runRound(ctx context.Context, d, p *matrix.Dense, grid int, factory bsp.Factory, engine []bsp.Option) (*matrix.Dense, *matrix.Dense, error) {
	m, err := bsp.NewManager(d.Rows(), grid, matmul.Phases(grid), map[string]*matrix.Dense{
		matmul.LabelA: d,
		matmul.LabelB: d,
		matmul.LabelP: p,
	}, factory, engine...)
	if err != nil {
		return nil, nil, err
	}
	if err = m.Run(ctx); err != nil {
		return nil, nil, err
	}
	dist, err := m.Result(matmul.LabelDist)
	if err != nil {
		return nil, nil, err
	}
	pred, err := m.Result(matmul.LabelPred)
	if err != nil {
		return nil, nil, err
	}

	return dist, pred, nil
}

// Rounds returns the number of squaring rounds of the last successful Solve.
func (s *Solver) Rounds() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.solved {
		return 0, ErrNotSolved
	}

	return s.rounds, nil
}

// RunID returns the id of the run that produced the current solution.
func (s *Solver) RunID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.solved {
		return "", ErrNotSolved
	}

	return s.runID, nil
}

// Matrices returns copies of the n×n distance and predecessor matrices
// (padding vertices excluded).
func (s *Solver) Matrices() (*matrix.Dense, *matrix.Dense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.solved {
		return nil, nil, ErrNotSolved
	}
	d, err := s.dist.Block(0, 0, s.n)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.pred.Block(0, 0, s.n)
	if err != nil {
		return nil, nil, err
	}

	return d, p, nil
}
