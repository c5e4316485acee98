package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// Outcome labels for projection metrics.
const (
	OutcomeOK            = "ok"
	OutcomeClientError   = "client_error"
	OutcomeNotFound      = "not_found"
	OutcomeDataIntegrity = "data_integrity"
	OutcomeComputation   = "computation"
	OutcomeError         = "error"
)

// Metrics records projection counts and latencies.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	projections *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	included    prometheus.Histogram
}

// NewMetrics creates and registers the projection collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "projector",
			Name:      "projections_total",
			Help:      "Projection requests by resource type and outcome.",
		}, []string{"type", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "projector",
			Name:      "projection_duration_seconds",
			Help:      "Time spent loading and projecting a document.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		included: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "projector",
			Name:      "included_resources",
			Help:      "Number of resources in the included member of each document.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}
	reg.MustRegister(m.projections, m.duration, m.included)
	return m
}

// Observe records one projection.
func (m *Metrics) Observe(typ string, doc *domain.Document, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.projections.WithLabelValues(typ, Outcome(err)).Inc()
	m.duration.WithLabelValues(typ).Observe(elapsed.Seconds())
	if doc != nil {
		m.included.Observe(float64(len(doc.Included)))
	}
}

// Outcome classifies an error into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInclude),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedType):
		return OutcomeClientError
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrDataIntegrity):
		return OutcomeDataIntegrity
	case errors.Is(err, domain.ErrComputation):
		return OutcomeComputation
	default:
		return OutcomeError
	}
}
