package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInvoiceNotify is the task type for notifying a supplier about a new invoice.
	TaskInvoiceNotify = "invoice:notify"
	// TaskInvoiceOverdueScan is the task type for the nightly overdue invoice scan.
	TaskInvoiceOverdueScan = "invoice:overdue_scan"
)

// InvoiceNotifyPayload identifies the invoice to announce.
type InvoiceNotifyPayload struct {
	InvoiceID int64 `json:"invoice_id"`
	OrderID   int64 `json:"order_id"`
}

// NewInvoiceNotifyTask constructs an Asynq task.
func NewInvoiceNotifyTask(payload InvoiceNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceNotify, data), nil
}

// InvoiceOverdueScanPayload bounds a single scan run.
type InvoiceOverdueScanPayload struct {
	Limit int `json:"limit"`
}

// NewInvoiceOverdueScanTask constructs an Asynq task.
func NewInvoiceOverdueScanTask(limit int) (*asynq.Task, error) {
	data, err := json.Marshal(InvoiceOverdueScanPayload{Limit: limit})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceOverdueScan, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	return &Client{client: asynq.NewClient(redisOpts)}, nil
}

// EnqueueInvoiceNotify enqueues a supplier notification for a freshly issued invoice.
func (c *Client) EnqueueInvoiceNotify(ctx context.Context, invoiceID, orderID int64) error {
	task, err := NewInvoiceNotifyTask(InvoiceNotifyPayload{InvoiceID: invoiceID, OrderID: orderID})
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(5))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
