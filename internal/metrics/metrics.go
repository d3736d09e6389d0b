package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	SubmissionsReceived prometheus.Counter
	SubmissionsRejected prometheus.Counter
	EmailDispatches     *prometheus.CounterVec
	LegacyMigrations    prometheus.Counter
	SubmitDuration      prometheus.Histogram
}

// NewMetrics creates new Prometheus metrics registered on reg. Tests pass
// a private registry so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "survey_response_submissions_total",
			Help: "Total number of persisted survey submissions",
		}),
		SubmissionsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "survey_response_submissions_rejected_total",
			Help: "Total number of rejected survey submissions",
		}),
		EmailDispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_response_email_dispatches_total",
			Help: "Total number of email dispatch attempts by outcome",
		}, []string{"status"}),
		LegacyMigrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "survey_response_legacy_migrations_total",
			Help: "Total number of legacy archive entries migrated on read",
		}),
		SubmitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "survey_response_submit_duration_seconds",
			Help:    "Time spent handling a submission",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
