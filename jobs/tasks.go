// Package jobs runs background work over Asynq: periodic low-stock
// scans for reorder planning and sweeps over stale in-flight deliveries.
package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan scans the catalog for reorder candidates.
	TaskLowStockScan = "inventory:low_stock_scan"
	// TaskDeliverySweep flags in-flight deliveries without recent updates.
	TaskDeliverySweep = "delivery:sweep"
)

// LowStockScanPayload tunes a low-stock scan run.
type LowStockScanPayload struct {
	// Limit caps how many reorder candidates are reported; 0 means all.
	Limit int `json:"limit"`
}

// NewLowStockScanTask constructs an Asynq task.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// DeliverySweepPayload tunes a delivery sweep run.
type DeliverySweepPayload struct {
	// StaleAfterMinutes marks an in-flight delivery stale when its last
	// update is older than this; 0 uses the job default.
	StaleAfterMinutes int `json:"stale_after_minutes"`
}

// NewDeliverySweepTask constructs an Asynq task.
func NewDeliverySweepTask(payload DeliverySweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeliverySweep, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueLowStockScan enqueues an on-demand low-stock scan.
func (c *Client) EnqueueLowStockScan(ctx context.Context, payload LowStockScanPayload) (*asynq.TaskInfo, error) {
	task, err := NewLowStockScanTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
