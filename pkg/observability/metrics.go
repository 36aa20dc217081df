package observability

import (
	"context"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects reducer-level counters and gauges.
type Metrics struct {
	transitions *prometheus.CounterVec
	merges      prometheus.Counter

	clients       prometheus.Gauge
	clusters      prometheus.Gauge
	pendingSwipes prometheus.Gauge
}

// New creates the metric set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mosaic",
			Name:      "transitions_total",
			Help:      "Events processed by the reducer, by type and outcome.",
		}, []string{"type", "outcome"}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mosaic",
			Name:      "cluster_merges_total",
			Help:      "Successful swipe pairings that merged two clusters.",
		}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mosaic",
			Name:      "clients",
			Help:      "Connected clients after the latest transition.",
		}),
		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mosaic",
			Name:      "clusters",
			Help:      "Live clusters after the latest transition.",
		}),
		pendingSwipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mosaic",
			Name:      "pending_swipes",
			Help:      "Swipes buffered inside the coincidence window.",
		}),
	}

	reg.MustRegister(m.transitions, m.merges, m.clients, m.clusters, m.pendingSwipes)
	return m
}

// Hooks returns lifecycle hooks that feed this metric set.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: m.onTransition,
		OnMerge:      m.onMerge,
	}
}

func (m *Metrics) onTransition(_ context.Context, evt *domain.TransitionEvent) {
	outcome := "applied"
	if evt.Err != nil {
		outcome = "rejected"
	}
	m.transitions.WithLabelValues(string(evt.Type), outcome).Inc()

	if evt.Err == nil {
		m.clients.Set(float64(evt.Clients))
		m.clusters.Set(float64(evt.Clusters))
		m.pendingSwipes.Set(float64(evt.PendingSwipes))
	}
}

func (m *Metrics) onMerge(_ context.Context, _ *domain.MergeEvent) {
	m.merges.Inc()
}
