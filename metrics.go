package shmqueue

import "github.com/prometheus/client_golang/prometheus"

// Metrics wires every channel's queue-state transitions into prometheus.
// A process that creates multiple channels shares one registration per
// metric (channel name is a label) rather than one gauge per instance.
var (
	activeNodesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "shmqueue",
		Name:      "active_nodes",
		Help:      "Number of messages currently queued on a channel.",
	}, []string{"channel"})

	totalSpaceGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "shmqueue",
		Name:      "total_space_bytes",
		Help:      "High-water mark of region bytes committed to nodes.",
	}, []string{"channel"})

	capacityGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "shmqueue",
		Name:      "capacity_bytes",
		Help:      "Total capacity of a channel's backing region.",
	}, []string{"channel"})

	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shmqueue",
		Name:      "operations_total",
		Help:      "Count of channel operations by outcome status.",
	}, []string{"channel", "op", "status"})
)

func init() {
	prometheus.MustRegister(activeNodesGauge, totalSpaceGauge, capacityGauge, operationsTotal)
}

// recordState publishes a ChannelState snapshot for the named channel.
func recordState(name string, state ChannelState) {
	activeNodesGauge.WithLabelValues(name).Set(float64(state.ActiveNodes))
	totalSpaceGauge.WithLabelValues(name).Set(float64(state.TotalSpace))
	capacityGauge.WithLabelValues(name).Set(float64(state.Capacity))
}

// recordOperation publishes one operation outcome for the named channel.
func recordOperation(name, op string, status Status) {
	operationsTotal.WithLabelValues(name, op, status.String()).Inc()
}
