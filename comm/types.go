package comm

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bspapsp/topology"
)

// Sentinel errors for channel arbitration.
var (
	// ErrChannelCongestion indicates two distinct sources claiming one channel in a superstep.
	ErrChannelCongestion = errors.New("comm: channel congestion")
	// ErrInconsistentChannelUsage indicates a channel whose values sent and receives declared differ.
	ErrInconsistentChannelUsage = errors.New("comm: inconsistent channel usage")
	// ErrOutOfRange indicates a coordinate off the grid or a target outside local memory.
	ErrOutOfRange = errors.New("comm: coordinate or target out of range")
	// ErrBadGrid indicates an arbiter built with p <= 0 or without memories.
	ErrBadGrid = errors.New("comm: invalid grid")
)

// Kind is the type of a communication channel.
type Kind int

const (
	// PointToPoint is the per-destination channel.
	PointToPoint Kind = iota
	// RowBroadcast is the highway of one grid row.
	RowBroadcast
	// ColBroadcast is the highway of one grid column.
	ColBroadcast
)

// String returns the channel kind name used in errors, logs and metric labels.
func (k Kind) String() string {
	switch k {
	case PointToPoint:
		return "point_to_point"
	case RowBroadcast:
		return "row_broadcast"
	case ColBroadcast:
		return "col_broadcast"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Kinds lists every channel kind in declaration order.
var Kinds = []Kind{PointToPoint, RowBroadcast, ColBroadcast}

// Target is a local memory address of the receiving element.
type Target struct {
	Row, Col int
	Label    string
}

// Transfer summarises what one source pushed through one channel in a superstep.
// For broadcasts Dest equals Source.
type Transfer struct {
	Kind   Kind
	Source topology.Coord
	Dest   topology.Coord
	Values int
}

// Traffic is the set of transfers delivered by one Flush, sorted by kind,
// then source, then destination (row-major).
type Traffic struct {
	Transfers []Transfer
}

// Values returns the number of values moved, over all transfers.
func (t Traffic) Values() int {
	total := 0
	for _, tr := range t.Transfers {
		total += tr.Values
	}

	return total
}

// ValuesByKind returns the number of values moved per channel kind.
func (t Traffic) ValuesByKind() map[Kind]int {
	out := make(map[Kind]int, len(Kinds))
	for _, tr := range t.Transfers {
		out[tr.Kind] += tr.Values
	}

	return out
}
