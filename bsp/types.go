package bsp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bspapsp/topology"
)

// Sentinel errors returned by the engine.
var (
	// ErrConfiguration indicates invalid manager parameters.
	ErrConfiguration = errors.New("bsp: invalid configuration")
	// ErrWorkerFailure indicates a failed or panicking Worker callback.
	ErrWorkerFailure = errors.New("bsp: worker failure")
	// ErrChannelMisuse indicates a channel operation outside a communication stage.
	ErrChannelMisuse = errors.New("bsp: channel operation outside a communication stage")
	// ErrAlreadyRun indicates a second Run on the same Manager.
	ErrAlreadyRun = errors.New("bsp: manager already run")
	// ErrNotRun indicates results requested before a successful Run.
	ErrNotRun = errors.New("bsp: manager has not completed a run")
)

// Stage identifies a step of the superstep protocol.
type Stage int

const (
	// Initialise runs once before the first phase.
	Initialise Stage = iota
	// CommunicationBefore precedes the computation of a phase.
	CommunicationBefore
	// Computation is the local work of a phase. Channels are closed.
	Computation
	// CommunicationAfter follows the computation of a phase.
	CommunicationAfter
)

// Stages lists every stage in protocol order.
var Stages = []Stage{Initialise, CommunicationBefore, Computation, CommunicationAfter}

// String returns the stage name used in logs and metric labels.
func (s Stage) String() string {
	switch s {
	case Initialise:
		return "initialise"
	case CommunicationBefore:
		return "communication_before"
	case Computation:
		return "computation"
	case CommunicationAfter:
		return "communication_after"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

func (s Stage) communicates() bool {
	return s == CommunicationBefore || s == CommunicationAfter
}

// Grid describes the problem decomposition seen by every Worker.
type Grid struct {
	N         int // problem size (matrix order)
	P         int // PEs per grid side
	BlockSize int // s = N/P, local block edge
	Phases    int // number of phases of the run
}

// Worker is the per-PE behaviour of an algorithm. Callbacks of one stage run
// concurrently across PEs; a PE's own callbacks never overlap.
type Worker interface {
	Initialise(pe *PE) error
	CommunicationBefore(pe *PE, phase int) error
	Computation(pe *PE, phase int) error
	CommunicationAfter(pe *PE, phase int) error
}

// Factory builds the Worker of the PE at coord.
type Factory func(coord topology.Coord, grid Grid) (Worker, error)
