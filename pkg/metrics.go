package actar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the clustering did over a run.
type Metrics struct {
	EventsProcessed   prometheus.Counter
	EventsRejected    *prometheus.CounterVec
	HitsRead          prometheus.Counter
	DuplicateHits     prometheus.Counter
	ChainsBuilt       prometheus.Counter
	SharedAttachments prometheus.Counter
	HitsPerEvent      prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actar",
			Name:      "events_processed_total",
			Help:      "Events passed through the chain builder.",
		}),
		EventsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actar",
			Name:      "events_rejected_total",
			Help:      "Events that produced no chains, by reason.",
		}, []string{"reason"}),
		HitsRead: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actar",
			Name:      "hits_read_total",
			Help:      "Hits loaded into the point store.",
		}),
		DuplicateHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actar",
			Name:      "duplicate_hits_total",
			Help:      "Hits dropped for sharing the position of the previous hit.",
		}),
		ChainsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actar",
			Name:      "chains_built_total",
			Help:      "Chains created.",
		}),
		SharedAttachments: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "actar",
			Name:      "shared_attachments_total",
			Help:      "Extra chains joined by hits neighbouring more than one chain.",
		}),
		HitsPerEvent: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "actar",
			Name:      "hits_per_event",
			Help:      "Number of hits per event.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
	}
}

// Observe records the outcome of one event. A nil receiver is allowed.
func (m *Metrics) Observe(stats BuildStats) {
	if m == nil {
		return
	}
	m.EventsProcessed.Inc()
	m.HitsRead.Add(float64(stats.Points))
	m.HitsPerEvent.Observe(float64(stats.Points))
	if stats.Rejected != NotRejected {
		m.EventsRejected.WithLabelValues(stats.Rejected.String()).Inc()
		return
	}
	m.DuplicateHits.Add(float64(stats.Duplicates))
	m.ChainsBuilt.Add(float64(stats.Chains))
	m.SharedAttachments.Add(float64(stats.SharedAttachments))
}
