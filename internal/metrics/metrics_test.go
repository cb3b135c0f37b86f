package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/helixml/splist/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRender(t *testing.T) {
	before := testutil.ToFloat64(metrics.RendersTotal.WithLabelValues(metrics.OutcomeEmpty))
	metrics.RecordRender(metrics.OutcomeEmpty)
	after := testutil.ToFloat64(metrics.RendersTotal.WithLabelValues(metrics.OutcomeEmpty))
	assert.Equal(t, before+1, after)
}

func TestRecordDiagnostic(t *testing.T) {
	before := testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("sort"))
	metrics.RecordDiagnostic("sort")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("sort")))
}

func TestExposure(t *testing.T) {
	metrics.RecordQuery(3, 0.01)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "splist_listing_entries_count")
	assert.Contains(t, string(body), "splist_query_duration_seconds_bucket")
}

func sampleCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.ListingEntries.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestRecordQuery(t *testing.T) {
	before := sampleCount(t)
	metrics.RecordQuery(7, 0.002)
	metrics.RecordQuery(0, 0.001)
	assert.Equal(t, before+2, sampleCount(t))
}
