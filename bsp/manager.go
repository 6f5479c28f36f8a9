// Package bsp - Run orchestration of one superstep sequence.
//
// Purpose:
//   - Scatter the initial s×s blocks into each PE's private memory.
//   - Drive Initialise once, then Communication/Flush/Computation per phase, as barriers.
//   - Run PE tasks on an errgroup bounded by the pool size; the first error aborts the run.
//   - Gather result labels back into a dense n×n matrix only after a clean run.
//
// Complexity quicksheet:
//   - NewManager: O(n²) scatter; Run: phases × (p² worker calls + flush); Result: O(n²).

package bsp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/matrix"
	"github.com/katalvlaran/bspapsp/memory"
	"github.com/katalvlaran/bspapsp/topology"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Manager owns the PE grid of one run: private memories, workers and the
// channel arbiter. A Manager runs at most once.
type Manager struct {
	grid    Grid
	opts    Options
	pes     []*PE // row-major
	workers []Worker
	arbiter *comm.Arbiter
	log     logrus.FieldLogger

	started   atomic.Bool
	done      atomic.Bool
	superstep int
}

// NewManager distributes the n×n initial matrices over a p×p grid (block
// (i,j) of each matrix lands in the memory of PE (i,j) under the map key as
// label) and builds one Worker per PE with factory.
//
// Errors: ErrConfiguration when n <= 0, p <= 0, p does not divide n,
// phases < 0, factory is nil, an initial matrix is not n×n, or the factory
// fails or returns a nil Worker.
func NewManager(n, p, phases int, initial map[string]*matrix.Dense, factory Factory, opts ...Option) (*Manager, error) {
	switch {
	case n <= 0 || p <= 0:
		return nil, fmt.Errorf("n=%d p=%d: both must be > 0: %w", n, p, ErrConfiguration)
	case n%p != 0:
		return nil, fmt.Errorf("grid side %d does not divide problem size %d: %w", p, n, ErrConfiguration)
	case phases < 0:
		return nil, fmt.Errorf("phases=%d: %w", phases, ErrConfiguration)
	case factory == nil:
		return nil, fmt.Errorf("nil worker factory: %w", ErrConfiguration)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	grid := Grid{N: n, P: p, BlockSize: n / p, Phases: phases}
	m := &Manager{
		grid:    grid,
		opts:    o,
		pes:     make([]*PE, p*p),
		workers: make([]Worker, p*p),
		log:     o.Logger.WithFields(logrus.Fields{"n": n, "p": p, "phases": phases}),
	}

	mems := make([]*memory.Private, p*p)
	var err error
	for idx := range mems {
		if mems[idx], err = memory.New(grid.BlockSize); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}
	m.arbiter, err = comm.NewArbiter(p, func(c topology.Coord) *memory.Private {
		return mems[c.Row*p+c.Col]
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err = scatter(grid, initial, mems); err != nil {
		return nil, err
	}

	for idx, c := range topology.All(p) {
		m.pes[idx] = &PE{coord: c, grid: grid, mem: mems[idx], arb: m.arbiter}
		w, ferr := factory(c, grid)
		if ferr != nil {
			return nil, fmt.Errorf("factory for pe %s: %w: %w", c, ErrConfiguration, ferr)
		}
		if w == nil {
			return nil, fmt.Errorf("factory for pe %s returned nil worker: %w", c, ErrConfiguration)
		}
		m.workers[idx] = w
	}

	return m, nil
}

// scatter copies block (i,j) of every initial matrix into memory (i,j).
// Labels are visited in sorted order.
func scatter(grid Grid, initial map[string]*matrix.Dense, mems []*memory.Private) error {
	labels := make([]string, 0, len(initial))
	for l := range initial {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	s := grid.BlockSize
	var r, c int
	for _, label := range labels {
		src := initial[label]
		if src == nil || src.Rows() != grid.N || src.Cols() != grid.N {
			return fmt.Errorf("initial matrix %q must be %dx%d: %w", label, grid.N, grid.N, ErrConfiguration)
		}
		for idx, pc := range topology.All(grid.P) {
			block, err := src.Block(pc.Row*s, pc.Col*s, s)
			if err != nil {
				return fmt.Errorf("scatter %q to pe %s: %w: %w", label, pc, ErrConfiguration, err)
			}
			for r = 0; r < s; r++ {
				for c = 0; c < s; c++ {
					v, _ := block.At(r, c)
					if err = mems[idx].Set(r, c, label, v); err != nil {
						return fmt.Errorf("scatter %q to pe %s: %w: %w", label, pc, ErrConfiguration, err)
					}
				}
			}
		}
	}

	return nil
}

// Grid returns the decomposition parameters.
func (m *Manager) Grid() Grid { return m.grid }

// Run executes the full superstep protocol. It stops at the first failing
// stage or flush and returns its error; ctx cancellation is honoured
// between stages and before each PE task starts.
func (m *Manager) Run(ctx context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}

	start := time.Now()
	m.log.Debug("run started")

	if err := m.runStage(ctx, Initialise, 0); err != nil {
		return m.fail(err)
	}
	for phase := 0; phase < m.grid.Phases; phase++ {
		if err := m.runStage(ctx, CommunicationBefore, phase); err != nil {
			return m.fail(err)
		}
		if err := m.flush(CommunicationBefore, phase); err != nil {
			return m.fail(err)
		}
		if err := m.runStage(ctx, Computation, phase); err != nil {
			return m.fail(err)
		}
		if err := m.runStage(ctx, CommunicationAfter, phase); err != nil {
			return m.fail(err)
		}
		if err := m.flush(CommunicationAfter, phase); err != nil {
			return m.fail(err)
		}
	}

	m.done.Store(true)
	m.log.WithField("elapsed", time.Since(start)).Debug("run finished")

	return nil
}

func (m *Manager) fail(err error) error {
	m.log.WithError(err).Warn("run aborted")

	return err
}

// runStage dispatches one task per PE and waits for all of them.
func (m *Manager) runStage(ctx context.Context, stage Stage, phase int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.PoolSize)

	var (
		mu   sync.Mutex
		errs []error
	)
	for idx := range m.pes {
		pe, w := m.pes[idx], m.workers[idx]
		pe.stage = stage
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil // skipped after a failure
			}
			m.opts.Observer.StageStarted(pe.coord, stage, phase)
			began := time.Now()
			err := m.invoke(pe, w, stage, phase)
			m.opts.Observer.StageFinished(pe.coord, stage, phase, time.Since(began), err)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}

			return err
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return ctx.Err()
}

// invoke calls the stage callback of w, turning panics and plain errors into
// ErrWorkerFailure while keeping channel errors matchable.
func (m *Manager) invoke(pe *PE, w Worker, stage Stage, phase int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pe %s %s phase %d: panic: %v: %w", pe.coord, stage, phase, r, ErrWorkerFailure)
		}
	}()

	switch stage {
	case Initialise:
		err = w.Initialise(pe)
	case CommunicationBefore:
		err = w.CommunicationBefore(pe, phase)
	case Computation:
		err = w.Computation(pe, phase)
	case CommunicationAfter:
		err = w.CommunicationAfter(pe, phase)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, comm.ErrChannelCongestion) || errors.Is(err, comm.ErrInconsistentChannelUsage) {
		return fmt.Errorf("pe %s %s phase %d: %w", pe.coord, stage, phase, err)
	}

	return fmt.Errorf("pe %s %s phase %d: %w: %w", pe.coord, stage, phase, ErrWorkerFailure, err)
}

// flush delivers the values of the communication stage that just ended.
func (m *Manager) flush(stage Stage, phase int) error {
	traffic, err := m.arbiter.Flush()
	if err != nil {
		return fmt.Errorf("flush after %s phase %d: %w", stage, phase, err)
	}
	m.opts.Observer.Flushed(m.superstep, stage, traffic)
	m.log.WithFields(logrus.Fields{
		"superstep": m.superstep,
		"stage":     stage.String(),
		"phase":     phase,
		"values":    traffic.Values(),
	}).Trace("flushed")
	m.superstep++

	return nil
}

// Result gathers the n×n matrix stored under label across all PEs.
//
// Errors: ErrNotRun before a successful Run; memory.ErrNotFound (wrapped)
// when some PE never wrote the label.
func (m *Manager) Result(label string) (*matrix.Dense, error) {
	if !m.done.Load() {
		return nil, ErrNotRun
	}

	s := m.grid.BlockSize
	out, err := matrix.NewDense(m.grid.N, m.grid.N)
	if err != nil {
		return nil, err
	}
	var r, c int
	var v float64
	for _, pe := range m.pes {
		for r = 0; r < s; r++ {
			for c = 0; c < s; c++ {
				if v, err = pe.mem.Get(r, c, label); err != nil {
					return nil, fmt.Errorf("Result(%q) at pe %s: %w", label, pe.coord, err)
				}
				if err = out.Set(pe.coord.Row*s+r, pe.coord.Col*s+c, v); err != nil {
					return nil, fmt.Errorf("Result(%q) at pe %s: %w", label, pe.coord, err)
				}
			}
		}
	}

	return out, nil
}
