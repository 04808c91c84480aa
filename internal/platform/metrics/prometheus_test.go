package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	t.Parallel()
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncTick("timer")
	pr.IncTick("timer")
	pr.IncAlarmTriggered()
	pr.IncStoreError("set")

	require.Equal(t, 2.0, testutil.ToFloat64(pr.ticks.WithLabelValues("timer")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.alarmsTriggered))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.storeErrors.WithLabelValues("set")))
	require.Equal(t, 0.0, testutil.ToFloat64(pr.timersFinished))
}

func TestPrometheusHandlerServesMetrics(t *testing.T) {
	t.Parallel()
	pr := NewPrometheusRecorder(nil)
	pr.IncLapRecorded()

	rec := httptest.NewRecorder()
	pr.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "vclock_laps_recorded_total 1"))
}

func TestOrNoop(t *testing.T) {
	t.Parallel()
	require.IsType(t, NoopRecorder{}, OrNoop(nil))
	pr := NewPrometheusRecorder(nil)
	require.Same(t, pr, OrNoop(pr))
}
