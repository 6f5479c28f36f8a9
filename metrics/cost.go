package metrics

import (
	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/topology"
)

// HopCost returns the link hops needed to move traffic on a p×p grid laid out as topo.
func HopCost(traffic comm.Traffic, topo topology.Topology, p int) int {
	hops := 0
	for _, tr := range traffic.Transfers {
		switch tr.Kind {
		case comm.PointToPoint:
			hops += tr.Values * topo.Distance(tr.Source, tr.Dest)
		case comm.RowBroadcast, comm.ColBroadcast:
			hops += tr.Values * (p - 1)
		}
	}

	return hops
}
