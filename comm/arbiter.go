// Package comm - Channel arbitration for one p×p grid.
//
// Purpose:
//   - Hold one point-to-point channel per destination and one highway per row and column.
//   - Reject a second source on a claimed channel with ErrChannelCongestion.
//   - Match queued values to declared receive targets at flush, in FIFO order per channel.
//   - Deliver only at flush, so a phase never observes values sent in the same phase.
//
// Complexity quicksheet:
//   - Send/Broadcast*/Receive*: O(1) amortised under one mutex.
//   - Flush: O(V log C) for V queued values over C claimed channels (sorted for determinism).

package comm

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/bspapsp/memory"
	"github.com/katalvlaran/bspapsp/topology"
)

// channel is one claimable resource: its current source and queued values.
type channel struct {
	claimed bool
	source  topology.Coord
	values  []float64
}

func (ch *channel) claim(src topology.Coord) bool {
	if ch.claimed && ch.source != src {
		return false
	}
	ch.claimed = true
	ch.source = src

	return true
}

// Arbiter serialises all channel operations of one grid.
type Arbiter struct {
	mu       sync.Mutex
	p        int
	memories func(topology.Coord) *memory.Private

	direct map[topology.Coord]*channel // keyed by destination
	rows   map[int]*channel
	cols   map[int]*channel

	directIntents map[topology.Coord][]Target
	rowIntents    map[topology.Coord][]Target
	colIntents    map[topology.Coord][]Target
}

// NewArbiter returns an arbiter for a p×p grid. memories resolves the private
// memory a delivered value is written to.
func NewArbiter(p int, memories func(topology.Coord) *memory.Private) (*Arbiter, error) {
	if p <= 0 || memories == nil {
		return nil, fmt.Errorf("NewArbiter(p=%d): %w", p, ErrBadGrid)
	}
	a := &Arbiter{p: p, memories: memories}
	a.reset()

	return a, nil
}

func (a *Arbiter) reset() {
	a.direct = make(map[topology.Coord]*channel)
	a.rows = make(map[int]*channel)
	a.cols = make(map[int]*channel)
	a.directIntents = make(map[topology.Coord][]Target)
	a.rowIntents = make(map[topology.Coord][]Target)
	a.colIntents = make(map[topology.Coord][]Target)
}

func (a *Arbiter) checkCoord(op string, c topology.Coord) error {
	if !topology.InBounds(c, a.p) {
		return fmt.Errorf("%s: pe %s on %dx%d grid: %w", op, c, a.p, a.p, ErrOutOfRange)
	}

	return nil
}

func (a *Arbiter) checkTarget(op string, pe topology.Coord, t Target) error {
	if err := a.checkCoord(op, pe); err != nil {
		return err
	}
	mem := a.memories(pe)
	if mem == nil || t.Row < 0 || t.Col < 0 || t.Row >= mem.Size() || t.Col >= mem.Size() {
		return fmt.Errorf("%s: pe %s target (%d,%d,%q): %w", op, pe, t.Row, t.Col, t.Label, ErrOutOfRange)
	}

	return nil
}

func congestion(kind Kind, owner, src topology.Coord) error {
	return fmt.Errorf("%s channel held by %s, claimed by %s: %w", kind, owner, src, ErrChannelCongestion)
}

// Send queues v from src to dst's point-to-point channel.
func (a *Arbiter) Send(src, dst topology.Coord, v float64) error {
	if err := a.checkCoord("Send", src); err != nil {
		return err
	}
	if err := a.checkCoord("Send", dst); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ch, ok := a.direct[dst]
	if !ok {
		ch = &channel{}
		a.direct[dst] = ch
	}
	if !ch.claim(src) {
		return fmt.Errorf("Send to %s: %w", dst, congestion(PointToPoint, ch.source, src))
	}
	ch.values = append(ch.values, v)

	return nil
}

// BroadcastRow queues v on the row highway of src.
func (a *Arbiter) BroadcastRow(src topology.Coord, v float64) error {
	return a.broadcast(RowBroadcast, src, v)
}

// BroadcastCol queues v on the column highway of src.
func (a *Arbiter) BroadcastCol(src topology.Coord, v float64) error {
	return a.broadcast(ColBroadcast, src, v)
}

func (a *Arbiter) broadcast(kind Kind, src topology.Coord, v float64) error {
	if err := a.checkCoord("Broadcast", src); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	highways, key := a.rows, src.Row
	if kind == ColBroadcast {
		highways, key = a.cols, src.Col
	}
	ch, ok := highways[key]
	if !ok {
		ch = &channel{}
		highways[key] = ch
	}
	if !ch.claim(src) {
		return congestion(kind, ch.source, src)
	}
	ch.values = append(ch.values, v)

	return nil
}

// Receive declares that the next point-to-point value for dst goes to t.
func (a *Arbiter) Receive(dst topology.Coord, t Target) error {
	if err := a.checkTarget("Receive", dst, t); err != nil {
		return err
	}
	a.mu.Lock()
	a.directIntents[dst] = append(a.directIntents[dst], t)
	a.mu.Unlock()

	return nil
}

// ReceiveRowBroadcast declares that the next value on pe's row highway goes to t.
func (a *Arbiter) ReceiveRowBroadcast(pe topology.Coord, t Target) error {
	if err := a.checkTarget("ReceiveRowBroadcast", pe, t); err != nil {
		return err
	}
	a.mu.Lock()
	a.rowIntents[pe] = append(a.rowIntents[pe], t)
	a.mu.Unlock()

	return nil
}

// ReceiveColBroadcast declares that the next value on pe's column highway goes to t.
func (a *Arbiter) ReceiveColBroadcast(pe topology.Coord, t Target) error {
	if err := a.checkTarget("ReceiveColBroadcast", pe, t); err != nil {
		return err
	}
	a.mu.Lock()
	a.colIntents[pe] = append(a.colIntents[pe], t)
	a.mu.Unlock()

	return nil
}

// delivery pairs one receiver with the values it gets.
type delivery struct {
	pe      topology.Coord
	values  []float64
	targets []Target
}

func mismatch(kind Kind, pe topology.Coord, sent, expected int) error {
	return fmt.Errorf("pe %s %s channel: %d values sent, %d receives declared: %w",
		pe, kind, sent, expected, ErrInconsistentChannelUsage)
}

// Flush validates every channel, then delivers all queued values and clears
// the superstep state. On error nothing is delivered; the state is cleared
// all the same.
func (a *Arbiter) Flush() (Traffic, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.reset()

	var (
		errs []error
		plan []delivery
		tr   Traffic
		sent int
	)

	// Point-to-point: every destination that was sent to or expects a value.
	for _, dst := range a.directKeys() {
		var values []float64
		if ch, ok := a.direct[dst]; ok {
			values = ch.values
			tr.Transfers = append(tr.Transfers, Transfer{Kind: PointToPoint, Source: ch.source, Dest: dst, Values: len(values)})
		}
		intents := a.directIntents[dst]
		if len(values) != len(intents) {
			errs = append(errs, mismatch(PointToPoint, dst, len(values), len(intents)))
			continue
		}
		plan = append(plan, delivery{pe: dst, values: values, targets: intents})
	}

	// Highways: every element of a claimed or listened-to row/column.
	for _, kind := range []Kind{RowBroadcast, ColBroadcast} {
		highways, intents := a.rows, a.rowIntents
		if kind == ColBroadcast {
			highways, intents = a.cols, a.colIntents
		}
		for _, line := range a.highwayLines(kind) {
			var values []float64
			if ch, ok := highways[line]; ok {
				values = ch.values
				tr.Transfers = append(tr.Transfers, Transfer{Kind: kind, Source: ch.source, Dest: ch.source, Values: len(values)})
			}
			for pos := 0; pos < a.p; pos++ {
				pe := topology.Coord{Row: line, Col: pos}
				if kind == ColBroadcast {
					pe = topology.Coord{Row: pos, Col: line}
				}
				sent = len(values)
				if sent != len(intents[pe]) {
					errs = append(errs, mismatch(kind, pe, sent, len(intents[pe])))
					continue
				}
				if sent > 0 {
					plan = append(plan, delivery{pe: pe, values: values, targets: intents[pe]})
				}
			}
		}
	}

	if len(errs) > 0 {
		return Traffic{}, errors.Join(errs...)
	}

	var err error
	for _, d := range plan {
		mem := a.memories(d.pe)
		for i, t := range d.targets {
			if err = mem.Set(t.Row, t.Col, t.Label, d.values[i]); err != nil {
				// Targets are range-checked at Receive time.
				return Traffic{}, fmt.Errorf("Flush: deliver to %s: %w", d.pe, err)
			}
		}
	}
	sortTransfers(tr.Transfers)

	return tr, nil
}

// directKeys returns destinations with queued values or intents, row-major.
func (a *Arbiter) directKeys() []topology.Coord {
	seen := make(map[topology.Coord]struct{}, len(a.direct)+len(a.directIntents))
	for c := range a.direct {
		seen[c] = struct{}{}
	}
	for c := range a.directIntents {
		seen[c] = struct{}{}
	}
	out := make([]topology.Coord, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

// highwayLines returns the rows (or columns) with a claim or an intent, ascending.
func (a *Arbiter) highwayLines(kind Kind) []int {
	seen := make(map[int]struct{})
	if kind == RowBroadcast {
		for r := range a.rows {
			seen[r] = struct{}{}
		}
		for c := range a.rowIntents {
			seen[c.Row] = struct{}{}
		}
	} else {
		for col := range a.cols {
			seen[col] = struct{}{}
		}
		for c := range a.colIntents {
			seen[c.Col] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Ints(out)

	return out
}

func less(x, y topology.Coord) bool {
	if x.Row != y.Row {
		return x.Row < y.Row
	}

	return x.Col < y.Col
}

func sortTransfers(ts []Transfer) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Kind != ts[j].Kind {
			return ts[i].Kind < ts[j].Kind
		}
		if ts[i].Source != ts[j].Source {
			return less(ts[i].Source, ts[j].Source)
		}

		return less(ts[i].Dest, ts[j].Dest)
	})
}
