package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/surgiflow/surgiflow/internal/delivery"
	jobmetrics "github.com/surgiflow/surgiflow/internal/jobs"
	"github.com/surgiflow/surgiflow/internal/store"
)

func TestDeliverySweepHandle(t *testing.T) {
	svc := delivery.NewService(store.NewMemory(), slog.Default())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := svc.SaveAll(ctx, []delivery.Record{
		{ID: "LOG-1000", Recipient: "Mercy Hospital", Status: delivery.StatusDispatched},
		{ID: "LOG-1001", Recipient: "Cleveland Clinic", Status: delivery.StatusDelivered},
	})
	require.NoError(t, err)

	job := NewDeliverySweepJob(svc, slog.Default(), jobmetrics.NewMetrics(prometheus.NewRegistry()))
	// Pin the clock well past the records' lastUpdate stamps.
	job.clock = func() time.Time { return now.Add(24 * time.Hour) }

	task, err := NewDeliverySweepTask(DeliverySweepPayload{StaleAfterMinutes: 30})
	require.NoError(t, err)
	require.NoError(t, job.Handle(ctx, task))
}

func TestDeliverySweepDefaultsStaleWindow(t *testing.T) {
	svc := delivery.NewService(store.NewMemory(), slog.Default())
	job := NewDeliverySweepJob(svc, slog.Default(), jobmetrics.NewMetrics(prometheus.NewRegistry()))

	task, err := NewDeliverySweepTask(DeliverySweepPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}
