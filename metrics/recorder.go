package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/topology"
)

// Summary is a point-in-time copy of a Recorder's totals.
type Summary struct {
	Supersteps       int
	Failures         int
	Hops             int
	SentByKind       map[comm.Kind]int
	StageTotals      map[bsp.Stage]time.Duration
	ComputationByPE  map[topology.Coord]time.Duration
	MaxComputationPE topology.Coord
	MaxComputation   time.Duration
}

// Recorder is an in-memory bsp.Observer. It may be shared by several
// managers (e.g. every round of a solve); totals accumulate.
type Recorder struct {
	topo topology.Topology
	p    int

	mu          sync.Mutex
	supersteps  int
	failures    int
	hops        int
	sent        map[topology.Coord]map[comm.Kind]int
	stageTotals map[bsp.Stage]time.Duration
	computation map[topology.Coord]time.Duration
}

var _ bsp.Observer = (*Recorder)(nil)

// NewRecorder returns a Recorder costing hops on a p×p grid laid out as topo.
func NewRecorder(topo topology.Topology, p int) *Recorder {
	return &Recorder{
		topo:        topo,
		p:           p,
		sent:        make(map[topology.Coord]map[comm.Kind]int),
		stageTotals: make(map[bsp.Stage]time.Duration),
		computation: make(map[topology.Coord]time.Duration),
	}
}

// StageStarted implements bsp.Observer.
func (r *Recorder) StageStarted(topology.Coord, bsp.Stage, int) {}

// StageFinished implements bsp.Observer.
func (r *Recorder) StageFinished(pe topology.Coord, stage bsp.Stage, _ int, elapsed time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stageTotals[stage] += elapsed
	if stage == bsp.Computation {
		r.computation[pe] += elapsed
	}
	if err != nil {
		r.failures++
	}
}

// Flushed implements bsp.Observer.
func (r *Recorder) Flushed(_ int, _ bsp.Stage, traffic comm.Traffic) {
	hops := HopCost(traffic, r.topo, r.p)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.supersteps++
	r.hops += hops
	for _, tr := range traffic.Transfers {
		byKind, ok := r.sent[tr.Source]
		if !ok {
			byKind = make(map[comm.Kind]int, len(comm.Kinds))
			r.sent[tr.Source] = byKind
		}
		byKind[tr.Kind] += tr.Values
	}
}

// Sent returns the values pe sent over channels of kind.
func (r *Recorder) Sent(pe topology.Coord, kind comm.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sent[pe][kind]
}

// Computation returns the total computation time of pe.
func (r *Recorder) Computation(pe topology.Coord) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.computation[pe]
}

// Summary returns a copy of every total.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		Supersteps:      r.supersteps,
		Failures:        r.failures,
		Hops:            r.hops,
		SentByKind:      make(map[comm.Kind]int, len(comm.Kinds)),
		StageTotals:     make(map[bsp.Stage]time.Duration, len(r.stageTotals)),
		ComputationByPE: make(map[topology.Coord]time.Duration, len(r.computation)),
	}
	for _, byKind := range r.sent {
		for k, v := range byKind {
			s.SentByKind[k] += v
		}
	}
	for st, d := range r.stageTotals {
		s.StageTotals[st] = d
	}

	// Deterministic arg-max: ties go to the first PE in row-major order.
	pes := make([]topology.Coord, 0, len(r.computation))
	for pe, d := range r.computation {
		s.ComputationByPE[pe] = d
		pes = append(pes, pe)
	}
	sort.Slice(pes, func(i, j int) bool {
		if pes[i].Row != pes[j].Row {
			return pes[i].Row < pes[j].Row
		}
		return pes[i].Col < pes[j].Col
	})
	for _, pe := range pes {
		if d := r.computation[pe]; d > s.MaxComputation {
			s.MaxComputation, s.MaxComputationPE = d, pe
		}
	}

	return s
}
