package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"

	"github.com/hibiken/asynq"

	"github.com/surgiflow/surgiflow/internal/catalog"
	jobmetrics "github.com/surgiflow/surgiflow/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// LowStockScanJob reports products at or below their reorder threshold,
// ordered by demand velocity so production planning sees the hottest
// items first.
type LowStockScanJob struct {
	Ledger  *catalog.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewLowStockScanJob initialises the low-stock scan handler.
func NewLowStockScanJob(ledger *catalog.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *LowStockScanJob {
	return &LowStockScanJob{Ledger: ledger, Logger: logger, Metrics: metrics}
}

// Handle executes one scan.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Ledger == nil {
		return errors.New("low stock scan: handler not configured")
	}
	tracker := j.metrics().Track(TaskLowStockScan)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()
	var payload LowStockScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	products, err := j.Ledger.List(ctx)
	if err != nil {
		return err
	}
	candidates := products[:0]
	for _, p := range products {
		if p.StockStatus != catalog.StatusInStock {
			candidates = append(candidates, p)
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].Velocity > candidates[b].Velocity
	})
	if payload.Limit > 0 && len(candidates) > payload.Limit {
		candidates = candidates[:payload.Limit]
	}

	for _, p := range candidates {
		j.metrics().AddReorderCandidates(string(p.StockStatus), 1)
		j.Logger.Warn("reorder candidate",
			slog.String("product_id", p.ID),
			slog.String("name", p.Name),
			slog.Int("stock", p.Stock),
			slog.Int("threshold", p.MinimumThreshold),
			slog.Int("suggested_qty", suggestedQuantity(p)),
			slog.Float64("velocity", p.Velocity))
	}
	j.Logger.Info("low stock scan complete",
		slog.Int("catalog", len(products)),
		slog.Int("candidates", len(candidates)))
	return nil
}

func (j *LowStockScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

// suggestedQuantity restocks to safety stock above the reorder threshold.
func suggestedQuantity(p catalog.Product) int {
	target := p.MinimumThreshold + p.SafetyStock
	if target <= p.Stock {
		return 0
	}
	return target - p.Stock
}
