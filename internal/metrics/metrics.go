package metrics

import (
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected" // another request was in flight
)

// Registry holds the order desk counters on a private prometheus registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg                *prometheus.Registry
	Extractions        *prometheus.CounterVec
	ExtractionSec      prometheus.Histogram
	Locations          *prometheus.CounterVec
	Finalized          prometheus.Counter
	ValidationFailures prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	extractions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "simorder_extractions_total"}, []string{"outcome"})
	extractionSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simorder_extraction_seconds",
		Buckets: prometheus.DefBuckets,
	})
	locations := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "simorder_location_total"}, []string{"outcome"})
	finalized := prometheus.NewCounter(prometheus.CounterOpts{Name: "simorder_finalized_total"})
	validation := prometheus.NewCounter(prometheus.CounterOpts{Name: "simorder_validation_failures_total"})

	r.MustRegister(extractions, extractionSec, locations, finalized, validation)
	return &Registry{
		reg:                r,
		Extractions:        extractions,
		ExtractionSec:      extractionSec,
		Locations:          locations,
		Finalized:          finalized,
		ValidationFailures: validation,
	}
}

func (r *Registry) ObserveExtraction(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.Extractions.WithLabelValues(outcome).Inc()
	if outcome != OutcomeRejected {
		r.ExtractionSec.Observe(elapsed.Seconds())
	}
}

func (r *Registry) ObserveLocation(outcome string) {
	if r == nil {
		return
	}
	r.Locations.WithLabelValues(outcome).Inc()
}

func (r *Registry) ObserveSend(ok bool) {
	if r == nil {
		return
	}
	if ok {
		r.Finalized.Inc()
		return
	}
	r.ValidationFailures.Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// WriteText dumps the registry in the text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
