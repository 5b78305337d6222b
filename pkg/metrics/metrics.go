package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "cvgen", Name: "documents_saved_total", Help: "Number of CVs persisted under a new slug."},
	)
	DocumentsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cvgen", Name: "documents_fetched_total", Help: "Number of CV reads by result (found, not_found)."},
		[]string{"result"},
	)
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cvgen", Name: "validation_failures_total", Help: "Number of rejected payloads by source (save, import, draft)."},
		[]string{"source"},
	)
	SlugCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "cvgen", Name: "slug_collisions_total", Help: "Number of slug candidates skipped because they were taken."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsSaved)
	reg.MustRegister(DocumentsFetched)
	reg.MustRegister(ValidationFailures)
	reg.MustRegister(SlugCollisions)
}
