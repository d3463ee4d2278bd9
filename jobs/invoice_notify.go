package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceNotifyJob tells the supplier contact that an invoice was issued.
type InvoiceNotifyJob struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
}

// NewInvoiceNotifyJob initialises the notification handler.
func NewInvoiceNotifyJob(pool *pgxpool.Pool, logger *slog.Logger) *InvoiceNotifyJob {
	return &InvoiceNotifyJob{Pool: pool, Logger: logger}
}

// Handle executes the notification logic.
func (j *InvoiceNotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("invoice notify: handler not configured")
	}
	var payload InvoiceNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(
		slog.Int64("invoice_id", payload.InvoiceID),
		slog.Int64("order_id", payload.OrderID),
	)

	var number string
	var amount float64
	var contactEmail string
	err := j.Pool.QueryRow(ctx, `SELECT i.number, i.amount, s.contact_email
FROM invoices i JOIN suppliers s ON s.id = i.supplier_id
WHERE i.id = $1`, payload.InvoiceID).Scan(&number, &amount, &contactEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("invoice vanished before notification")
			return asynq.SkipRetry
		}
		return err
	}

	// Placeholder: hand off to the mail gateway once one is provisioned.
	logger.Info("invoice issued notification",
		slog.String("number", number),
		slog.Float64("amount", amount),
		slog.String("contact_email", contactEmail),
	)
	return nil
}

func (j *InvoiceNotifyJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInvoiceNotify))
	}
	return slog.Default().With(slog.String("job", TaskInvoiceNotify))
}
