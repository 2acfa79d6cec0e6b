package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsRuns(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	require.NoError(t, metrics.Track("inventory:low_stock_scan").End(nil))

	boom := errors.New("boom")
	require.ErrorIs(t, metrics.Track("inventory:low_stock_scan").End(boom), boom)

	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("inventory:low_stock_scan", "success")), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("inventory:low_stock_scan", "failure")), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("inventory:low_stock_scan")), 0.0001)
}

func TestDomainCounters(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.AddReorderCandidates("LOW_STOCK", 2)
	metrics.AddReorderCandidates("OUT_OF_STOCK", 1)
	metrics.AddReorderCandidates("LOW_STOCK", 0)
	metrics.AddStaleDeliveries("DISPATCHED", 3)

	require.InDelta(t, 2.0, testutil.ToFloat64(metrics.reorderCandidates.WithLabelValues("LOW_STOCK")), 0.0001)
	require.InDelta(t, 1.0, testutil.ToFloat64(metrics.reorderCandidates.WithLabelValues("OUT_OF_STOCK")), 0.0001)
	require.InDelta(t, 3.0, testutil.ToFloat64(metrics.staleDeliveries.WithLabelValues("DISPATCHED")), 0.0001)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *Metrics

	boom := errors.New("boom")
	require.ErrorIs(t, metrics.Track("inventory:low_stock_scan").End(boom), boom)
	metrics.AddReorderCandidates("LOW_STOCK", 1)
	metrics.AddStaleDeliveries("QUEUED", 1)
}
