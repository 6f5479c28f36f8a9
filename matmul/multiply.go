package matmul

import (
	"fmt"

	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/topology"
)

// BroadcastMultiply returns the factory of the plain product C = A×B on any
// p | n grid. In phase l the PEs of block column l broadcast their "A" block
// along their rows and the PEs of block row l broadcast their "B" block along
// their columns; every PE accumulates the block product into "C".
func BroadcastMultiply() bsp.Factory {
	return func(_ topology.Coord, g bsp.Grid) (bsp.Worker, error) {
		if g.Phases != g.P {
			return nil, fmt.Errorf("BroadcastMultiply needs %d phases, got %d: %w", g.P, g.Phases, ErrGridMismatch)
		}

		return broadcastMultiply{}, nil
	}
}

type broadcastMultiply struct{}

func (broadcastMultiply) Initialise(pe *bsp.PE) error {
	b := block{pe: pe}
	each(pe.Grid().BlockSize, func(r, c int) {
		b.store(r, c, LabelC, 0)
		b.store(r, c, LabelAConst, b.read(r, c, LabelA))
		b.store(r, c, LabelBConst, b.read(r, c, LabelB))
	})

	return b.err
}

func (broadcastMultiply) CommunicationBefore(pe *bsp.PE, phase int) error {
	i, j := pe.Coord().Row, pe.Coord().Col
	s := pe.Grid().BlockSize
	b := block{pe: pe}
	if j == phase {
		each(s, func(r, c int) {
			v := b.read(r, c, LabelAConst)
			b.do(func() error { return pe.BroadcastRow(v) })
		})
	}
	if i == phase {
		each(s, func(r, c int) {
			v := b.read(r, c, LabelBConst)
			b.do(func() error { return pe.BroadcastCol(v) })
		})
	}
	each(s, func(r, c int) {
		b.do(func() error { return pe.ReceiveRowBroadcast(r, c, LabelA) })
	})
	each(s, func(r, c int) {
		b.do(func() error { return pe.ReceiveColBroadcast(r, c, LabelB) })
	})

	return b.err
}

func (broadcastMultiply) Computation(pe *bsp.PE, _ int) error {
	s := pe.Grid().BlockSize
	b := block{pe: pe}
	each(s, func(r, c int) {
		acc := b.read(r, c, LabelC)
		for m := 0; m < s; m++ {
			acc += b.read(r, m, LabelA) * b.read(m, c, LabelB)
		}
		b.store(r, c, LabelC, acc)
	})

	return b.err
}

func (broadcastMultiply) CommunicationAfter(*bsp.PE, int) error { return nil }
