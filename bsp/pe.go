package bsp

import (
	"fmt"

	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/memory"
	"github.com/katalvlaran/bspapsp/topology"
)

// PE is the handle a Worker uses to reach its private memory and the channels.
// It is only valid inside the callback it was passed to.
type PE struct {
	coord topology.Coord
	grid  Grid
	mem   *memory.Private
	arb   *comm.Arbiter
	stage Stage
}

// Coord returns the grid coordinate of the PE.
func (pe *PE) Coord() topology.Coord { return pe.coord }

// Grid returns the decomposition parameters of the run.
func (pe *PE) Grid() Grid { return pe.grid }

// Stage returns the stage currently executing on the PE.
func (pe *PE) Stage() Stage { return pe.stage }

// Read returns the local value at (r, c, label).
func (pe *PE) Read(r, c int, label string) (float64, error) {
	return pe.mem.Get(r, c, label)
}

// Store writes v at (r, c, label) in local memory.
func (pe *PE) Store(r, c int, label string, v float64) error {
	return pe.mem.Set(r, c, label, v)
}

// Contains reports whether (r, c, label) holds a value.
func (pe *PE) Contains(r, c int, label string) bool {
	return pe.mem.Contains(r, c, label)
}

func (pe *PE) channelOpen(op string) error {
	if !pe.stage.communicates() {
		return fmt.Errorf("pe %s %s during %s: %w", pe.coord, op, pe.stage, ErrChannelMisuse)
	}

	return nil
}

// Send queues v for dst's point-to-point channel.
func (pe *PE) Send(dst topology.Coord, v float64) error {
	if err := pe.channelOpen("Send"); err != nil {
		return err
	}

	return pe.arb.Send(pe.coord, dst, v)
}

// Receive declares that the next point-to-point value for this PE goes to (r, c, label).
func (pe *PE) Receive(r, c int, label string) error {
	if err := pe.channelOpen("Receive"); err != nil {
		return err
	}

	return pe.arb.Receive(pe.coord, comm.Target{Row: r, Col: c, Label: label})
}

// BroadcastRow queues v on this PE's row highway.
func (pe *PE) BroadcastRow(v float64) error {
	if err := pe.channelOpen("BroadcastRow"); err != nil {
		return err
	}

	return pe.arb.BroadcastRow(pe.coord, v)
}

// BroadcastCol queues v on this PE's column highway.
func (pe *PE) BroadcastCol(v float64) error {
	if err := pe.channelOpen("BroadcastCol"); err != nil {
		return err
	}

	return pe.arb.BroadcastCol(pe.coord, v)
}

// ReceiveRowBroadcast declares that the next row-highway value goes to (r, c, label).
func (pe *PE) ReceiveRowBroadcast(r, c int, label string) error {
	if err := pe.channelOpen("ReceiveRowBroadcast"); err != nil {
		return err
	}

	return pe.arb.ReceiveRowBroadcast(pe.coord, comm.Target{Row: r, Col: c, Label: label})
}

// ReceiveColBroadcast declares that the next column-highway value goes to (r, c, label).
func (pe *PE) ReceiveColBroadcast(r, c int, label string) error {
	if err := pe.channelOpen("ReceiveColBroadcast"); err != nil {
		return err
	}

	return pe.arb.ReceiveColBroadcast(pe.coord, comm.Target{Row: r, Col: c, Label: label})
}
