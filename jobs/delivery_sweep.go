package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/surgiflow/surgiflow/internal/delivery"
	jobmetrics "github.com/surgiflow/surgiflow/internal/jobs"
)

const defaultStaleAfter = 45 * time.Minute

// DeliverySweepJob flags in-flight deliveries whose last update is stale,
// so dispatch can chase couriers before a customer does.
type DeliverySweepJob struct {
	Deliveries *delivery.Service
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
	clock      func() time.Time
}

// NewDeliverySweepJob initialises the delivery sweep handler.
func NewDeliverySweepJob(deliveries *delivery.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DeliverySweepJob {
	return &DeliverySweepJob{
		Deliveries: deliveries,
		Logger:     logger,
		Metrics:    metrics,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes one sweep.
func (j *DeliverySweepJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Deliveries == nil {
		return errors.New("delivery sweep: handler not configured")
	}
	tracker := j.metrics().Track(TaskDeliverySweep)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()
	var payload DeliverySweepPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	staleAfter := defaultStaleAfter
	if payload.StaleAfterMinutes > 0 {
		staleAfter = time.Duration(payload.StaleAfterMinutes) * time.Minute
	}

	records, err := j.Deliveries.List(ctx)
	if err != nil {
		return err
	}
	cutoff := j.clock().Add(-staleAfter)
	stale := 0
	for _, r := range records {
		if r.Status.InFlight() && r.LastUpdate.Before(cutoff) {
			stale++
			j.metrics().AddStaleDeliveries(string(r.Status), 1)
			j.Logger.Warn("stale in-flight delivery",
				slog.String("delivery_id", r.ID),
				slog.String("status", string(r.Status)),
				slog.Time("last_update", r.LastUpdate))
		}
	}
	j.Logger.Info("delivery sweep complete",
		slog.Int("records", len(records)),
		slog.Int("stale", stale))
	return nil
}

func (j *DeliverySweepJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
