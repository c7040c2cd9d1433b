package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	r := NewRegistry()

	r.ObserveExtraction(OutcomeOK, 300*time.Millisecond)
	r.ObserveExtraction(OutcomeFailed, time.Second)
	r.ObserveExtraction(OutcomeRejected, 0)
	r.ObserveLocation(OutcomeOK)
	r.ObserveSend(true)
	r.ObserveSend(false)
	r.ObserveSend(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Extractions.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Extractions.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Locations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Finalized))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ValidationFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(r.ExtractionSec))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveExtraction(OutcomeOK, time.Second)
		r.ObserveLocation(OutcomeFailed)
		r.ObserveSend(true)
	})
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.ObserveSend(true)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	assert.Contains(t, buf.String(), "simorder_finalized_total 1")
	assert.Contains(t, buf.String(), "# TYPE simorder_extraction_seconds histogram")
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.ObserveLocation(OutcomeFailed)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `simorder_location_total{outcome="failed"} 1`)
}
