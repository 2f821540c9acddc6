package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeny_CountsByReason(t *testing.T) {
	m := New()
	m.Deny("forbidden")
	m.Deny("forbidden")
	m.Deny("unauthenticated")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AccessDenials.WithLabelValues("forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccessDenials.WithLabelValues("unauthenticated")))
}

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	m.Deny("forbidden")
	m.AlertRaised("low_stock")
	m.CacheLookup("hit")
	m.AlertEvaluationFailed()
}

func TestAlertEvaluationFailed_Counts(t *testing.T) {
	m := New()
	m.AlertEvaluationFailed()
	m.AlertEvaluationFailed()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AlertEvaluationFailures))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.AlertRaised("low_stock")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `avacc_reorder_alerts_raised_total{type="low_stock"} 1`))
}
