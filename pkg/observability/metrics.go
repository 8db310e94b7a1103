package observability

import (
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the editor collectors.
type Metrics struct {
	Commits       *prometheus.CounterVec
	HistoryMoves  *prometheus.CounterVec
	RejectedEdges prometheus.Counter
	Loads         prometheus.Counter
	DroppedEdges  prometheus.Counter
	HistoryDepth  prometheus.Gauge
	GraphNodes    prometheus.Gauge
	GraphEdges    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowdesk_history_commits_total",
				Help: "Total number of history commits by editor operation",
			},
			[]string{"reason"},
		),
		HistoryMoves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowdesk_history_moves_total",
				Help: "Total number of undo and redo requests",
			},
			[]string{"direction", "applied"},
		),
		RejectedEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowdesk_rejected_edges_total",
			Help: "Total number of rejected connection attempts",
		}),
		Loads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowdesk_definition_loads_total",
			Help: "Total number of definitions loaded into the editor",
		}),
		DroppedEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowdesk_load_dropped_edges_total",
			Help: "Total number of edges dropped while repairing loaded definitions",
		}),
		HistoryDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flowdesk_history_depth",
			Help: "Number of entries in the undo history after the last commit",
		}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flowdesk_graph_nodes",
			Help: "Number of nodes after the last commit or load",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flowdesk_graph_edges",
			Help: "Number of edges after the last commit or load",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.Commits, m.HistoryMoves, m.RejectedEdges, m.Loads,
		m.DroppedEdges, m.HistoryDepth, m.GraphNodes, m.GraphEdges,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(e *domain.CommitEvent) {
			m.Commits.WithLabelValues(string(e.Reason)).Inc()
			m.HistoryDepth.Set(float64(e.HistoryLen))
			m.GraphNodes.Set(float64(e.Nodes))
			m.GraphEdges.Set(float64(e.Edges))
		},
		OnHistory: func(e *domain.HistoryEvent) {
			applied := "false"
			if e.Applied {
				applied = "true"
			}
			m.HistoryMoves.WithLabelValues(e.Direction, applied).Inc()
		},
		OnEdgeRejected: func(*domain.EdgeRejectedEvent) {
			m.RejectedEdges.Inc()
		},
		OnLoad: func(e *domain.LoadEvent) {
			m.Loads.Inc()
			m.DroppedEdges.Add(float64(e.DroppedEdges))
			m.HistoryDepth.Set(1)
			m.GraphNodes.Set(float64(e.Nodes))
			m.GraphEdges.Set(float64(e.Edges))
		},
	}
}
