package matmul

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/topology"
)

// Memory labels shared with callers.
const (
	LabelA      = "A"
	LabelB      = "B"
	LabelP      = "P"
	LabelAConst = "A_CONST"
	LabelBConst = "B_CONST"
	LabelPConst = "P_CONST"
	LabelDist   = "dist"
	LabelPred   = "pred"
	LabelKBest  = "k_best"
	LabelC      = "C"
)

// ErrGridMismatch indicates a grid the algorithm cannot run on.
var ErrGridMismatch = errors.New("matmul: grid does not fit the algorithm")

// block reads and writes a PE's local memory and remembers the first error,
// so kernels can be written without an error check per access.
type block struct {
	pe  *bsp.PE
	err error
}

func (b *block) read(r, c int, label string) float64 {
	if b.err != nil {
		return 0
	}
	v, err := b.pe.Read(r, c, label)
	if err != nil {
		b.err = err
	}

	return v
}

func (b *block) store(r, c int, label string, v float64) {
	if b.err != nil {
		return
	}
	b.err = b.pe.Store(r, c, label, v)
}

func (b *block) do(f func() error) {
	if b.err != nil {
		return
	}
	b.err = f()
}

// each visits the local offsets of an s×s block in row-major order.
func each(s int, f func(r, c int)) {
	var r, c int
	for r = 0; r < s; r++ {
		for c = 0; c < s; c++ {
			f(r, c)
		}
	}
}

// Phases returns the number of phases a squaring round needs on a p×p grid.
func Phases(p int) int { return p }

// FoxOtto returns the factory of the element-wise algorithm (p == n).
func FoxOtto() bsp.Factory {
	return func(_ topology.Coord, g bsp.Grid) (bsp.Worker, error) {
		if g.P != g.N {
			return nil, fmt.Errorf("FoxOtto needs one PE per entry, got p=%d n=%d: %w", g.P, g.N, ErrGridMismatch)
		}
		if g.Phases != g.N {
			return nil, fmt.Errorf("FoxOtto needs %d phases, got %d: %w", g.N, g.Phases, ErrGridMismatch)
		}

		return foxOtto{}, nil
	}
}

// GeneralisedFoxOtto returns the factory of the block algorithm (p | n).
func GeneralisedFoxOtto() bsp.Factory {
	return func(_ topology.Coord, g bsp.Grid) (bsp.Worker, error) {
		if g.BlockSize < 1 || g.P*g.BlockSize != g.N {
			return nil, fmt.Errorf("block size %d does not tile n=%d on p=%d: %w", g.BlockSize, g.N, g.P, ErrGridMismatch)
		}
		if g.Phases != g.P {
			return nil, fmt.Errorf("GeneralisedFoxOtto needs %d phases, got %d: %w", g.P, g.Phases, ErrGridMismatch)
		}

		return generalised{}, nil
	}
}

// foxOtto: PE (i,j) owns entry (i,j).
type foxOtto struct{}

func (foxOtto) Initialise(pe *bsp.PE) error {
	b := block{pe: pe}
	b.store(0, 0, LabelDist, math.Inf(1))
	b.store(0, 0, LabelAConst, b.read(0, 0, LabelA))
	b.store(0, 0, LabelPConst, b.read(0, 0, LabelP))
	b.store(0, 0, LabelPred, b.read(0, 0, LabelP))

	return b.err
}

func (foxOtto) CommunicationBefore(pe *bsp.PE, phase int) error {
	i, j, n := pe.Coord().Row, pe.Coord().Col, pe.Grid().N
	b := block{pe: pe}
	if j == (i+phase)%n {
		v := b.read(0, 0, LabelAConst)
		b.do(func() error { return pe.BroadcastRow(v) })
	}
	b.do(func() error { return pe.ReceiveRowBroadcast(0, 0, LabelA) })

	return b.err
}

func (foxOtto) Computation(pe *bsp.PE, phase int) error {
	i, j, n := pe.Coord().Row, pe.Coord().Col, pe.Grid().N
	b := block{pe: pe}
	k := (i + phase) % n
	cand := b.read(0, 0, LabelA) + b.read(0, 0, LabelB)
	// Phases visit k in rotation order, so the first strict minimum is
	// also the one with the smallest offset from i.
	if b.err == nil && cand < b.read(0, 0, LabelDist) {
		b.store(0, 0, LabelDist, cand)
		if k != j {
			b.store(0, 0, LabelPred, b.read(0, 0, LabelP))
		} else {
			b.store(0, 0, LabelPred, b.read(0, 0, LabelPConst))
		}
	}

	return b.err
}

func (foxOtto) CommunicationAfter(pe *bsp.PE, _ int) error {
	return rotateNorth(pe, 1)
}

// generalised: PE (i,j) owns the s×s block starting at (s*i, s*j).
//
// Blocks visit the intermediates k in a different order than the
// element-wise algorithm, so every cell also keeps the rotation offset
// (k-i) mod n of its current winner in "k_best". Equal finite candidates
// are won by the smaller offset, which makes the result independent of p.
type generalised struct{}

func (generalised) Initialise(pe *bsp.PE) error {
	g := pe.Grid()
	b := block{pe: pe}
	each(g.BlockSize, func(r, c int) {
		b.store(r, c, LabelDist, math.Inf(1))
		b.store(r, c, LabelKBest, float64(g.N))
		b.store(r, c, LabelAConst, b.read(r, c, LabelA))
		b.store(r, c, LabelPConst, b.read(r, c, LabelP))
		b.store(r, c, LabelPred, b.read(r, c, LabelP))
	})

	return b.err
}

func (generalised) CommunicationBefore(pe *bsp.PE, phase int) error {
	i, j := pe.Coord().Row, pe.Coord().Col
	g := pe.Grid()
	b := block{pe: pe}
	if j == (i+phase)%g.P {
		each(g.BlockSize, func(r, c int) {
			v := b.read(r, c, LabelAConst)
			b.do(func() error { return pe.BroadcastRow(v) })
		})
	}
	each(g.BlockSize, func(r, c int) {
		b.do(func() error { return pe.ReceiveRowBroadcast(r, c, LabelA) })
	})

	return b.err
}

func (generalised) Computation(pe *bsp.PE, phase int) error {
	i, j := pe.Coord().Row, pe.Coord().Col
	g := pe.Grid()
	s, n := g.BlockSize, g.N
	b := block{pe: pe}
	base := s * ((i + phase) % g.P)

	each(s, func(r, c int) {
		gi, gj := s*i+r, s*j+c
		best := b.read(r, c, LabelDist)
		bestOff := int(b.read(r, c, LabelKBest))
		var iter, k, off int
		var cand float64
		for m := 0; m < s; m++ {
			iter = (r + m) % s
			k = base + iter
			cand = b.read(r, iter, LabelA) + b.read(iter, c, LabelB)
			if b.err != nil {
				return
			}
			off = (k - gi + n) % n
			if cand > best || (cand == best && (math.IsInf(cand, 1) || off >= bestOff)) {
				continue
			}
			best, bestOff = cand, off
			b.store(r, c, LabelDist, cand)
			b.store(r, c, LabelKBest, float64(off))
			if k != gj {
				b.store(r, c, LabelPred, b.read(iter, c, LabelP))
			} else {
				b.store(r, c, LabelPred, b.read(r, c, LabelPConst))
			}
		}
	})

	return b.err
}

func (generalised) CommunicationAfter(pe *bsp.PE, _ int) error {
	return rotateNorth(pe, pe.Grid().BlockSize)
}

// rotateNorth sends the whole "B" block, then the whole "P" block, to the
// northern neighbour and declares the matching receives.
func rotateNorth(pe *bsp.PE, s int) error {
	north := topology.NorthOf(pe.Coord(), pe.Grid().P)
	b := block{pe: pe}
	for _, label := range []string{LabelB, LabelP} {
		each(s, func(r, c int) {
			v := b.read(r, c, label)
			b.do(func() error { return pe.Send(north, v) })
		})
	}
	for _, label := range []string{LabelB, LabelP} {
		each(s, func(r, c int) {
			b.do(func() error { return pe.Receive(r, c, label) })
		})
	}

	return b.err
}
