package bsp

import (
	"time"

	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/topology"
)

// Observer receives engine events. Stage events arrive concurrently from
// several PEs, so implementations must be safe for concurrent use.
// Observers never affect the outcome of a run.
type Observer interface {
	StageStarted(pe topology.Coord, stage Stage, phase int)
	StageFinished(pe topology.Coord, stage Stage, phase int, elapsed time.Duration, err error)
	Flushed(superstep int, stage Stage, traffic comm.Traffic)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) StageStarted(topology.Coord, Stage, int)                       {}
func (NopObserver) StageFinished(topology.Coord, Stage, int, time.Duration, error) {}
func (NopObserver) Flushed(int, Stage, comm.Traffic)                              {}

type multiObserver []Observer

// Observers fans every event out to obs in order. Nil entries are dropped.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}

	return out
}

func (m multiObserver) StageStarted(pe topology.Coord, stage Stage, phase int) {
	for _, o := range m {
		o.StageStarted(pe, stage, phase)
	}
}

func (m multiObserver) StageFinished(pe topology.Coord, stage Stage, phase int, elapsed time.Duration, err error) {
	for _, o := range m {
		o.StageFinished(pe, stage, phase, elapsed, err)
	}
}

func (m multiObserver) Flushed(superstep int, stage Stage, traffic comm.Traffic) {
	for _, o := range m {
		o.Flushed(superstep, stage, traffic)
	}
}
