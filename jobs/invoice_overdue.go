package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceOverdueScanJob flags pending invoices whose due date has passed.
type InvoiceOverdueScanJob struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
	clock  func() time.Time
}

// NewInvoiceOverdueScanJob initialises the overdue scan handler.
func NewInvoiceOverdueScanJob(pool *pgxpool.Pool, logger *slog.Logger) *InvoiceOverdueScanJob {
	return &InvoiceOverdueScanJob{
		Pool:   pool,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the overdue scan logic.
func (j *InvoiceOverdueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("overdue scan: handler not configured")
	}
	var payload InvoiceOverdueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Limit <= 0 {
		payload.Limit = 500
	}

	start := j.now()
	logger := j.logger()
	logger.Info("starting overdue invoice scan", slog.Int("limit", payload.Limit))

	rows, err := j.Pool.Query(ctx, `SELECT id, number, supplier_id, amount, due_date
FROM invoices WHERE status = 'PENDING' AND due_date < $1
ORDER BY due_date LIMIT $2`, start, payload.Limit)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}
	defer rows.Close()

	overdue := 0
	for rows.Next() {
		var id, supplierID int64
		var number string
		var amount float64
		var dueDate time.Time
		if err := rows.Scan(&id, &number, &supplierID, &amount, &dueDate); err != nil {
			return err
		}
		overdue++
		logger.Warn("invoice overdue",
			slog.Int64("invoice_id", id),
			slog.String("number", number),
			slog.Int64("supplier_id", supplierID),
			slog.Float64("amount", amount),
			slog.Duration("overdue_for", start.Sub(dueDate)),
		)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	logger.Info("completed overdue invoice scan",
		slog.Int("overdue", overdue),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *InvoiceOverdueScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInvoiceOverdueScan))
	}
	return slog.Default().With(slog.String("job", TaskInvoiceOverdueScan))
}

func (j *InvoiceOverdueScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
