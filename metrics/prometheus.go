package metrics

import (
	"fmt"
	"time"

	"github.com/katalvlaran/bspapsp/bsp"
	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/topology"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a bsp.Observer exporting engine metrics.
type Prometheus struct {
	topo topology.Topology
	p    int

	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	channelValues *prometheus.CounterVec
	channelHops   prometheus.Counter
	supersteps    prometheus.Counter
}

var _ bsp.Observer = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer, topo topology.Topology, p int) (*Prometheus, error) {
	m := &Prometheus{
		topo: topo,
		p:    p,
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bspapsp_stage_duration_seconds",
			Help:    "Duration of one PE task per stage",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		}, []string{"stage"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bspapsp_stage_failures_total",
			Help: "PE tasks that failed, per stage",
		}, []string{"stage"}),
		channelValues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bspapsp_channel_values_total",
			Help: "Values delivered per channel kind",
		}, []string{"kind"}),
		channelHops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bspapsp_channel_hops_total",
			Help: "Link hops needed to deliver all values",
		}),
		supersteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bspapsp_supersteps_total",
			Help: "Successful channel flushes",
		}),
	}

	for _, c := range []prometheus.Collector{m.stageDuration, m.stageFailures, m.channelValues, m.channelHops, m.supersteps} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return m, nil
}

// StageStarted implements bsp.Observer.
func (m *Prometheus) StageStarted(topology.Coord, bsp.Stage, int) {}

// StageFinished implements bsp.Observer.
func (m *Prometheus) StageFinished(_ topology.Coord, stage bsp.Stage, _ int, elapsed time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage.String()).Observe(elapsed.Seconds())
	if err != nil {
		m.stageFailures.WithLabelValues(stage.String()).Inc()
	}
}

// Flushed implements bsp.Observer.
func (m *Prometheus) Flushed(_ int, _ bsp.Stage, traffic comm.Traffic) {
	m.supersteps.Inc()
	for kind, v := range traffic.ValuesByKind() {
		m.channelValues.WithLabelValues(kind.String()).Add(float64(v))
	}
	m.channelHops.Add(float64(HopCost(traffic, m.topo, m.p)))
}
