package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/invoices"
	"github.com/shoplite/shoplite/internal/shared"
	"github.com/shoplite/shoplite/internal/suppliers"
)

// RepositoryPort abstracts order persistence for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (PurchaseOrder, error)
	List(ctx context.Context, filters ListFilters, limit, offset int) ([]PurchaseOrder, error)
	Create(ctx context.Context, o PurchaseOrder) (int64, error)
	UpdateTransition(ctx context.Context, o PurchaseOrder, expected Status) error
	Complete(ctx context.Context, o PurchaseOrder, expected Status, inv invoices.Invoice) (CompletionResult, error)
}

// CatalogPort supplies the unit price snapshotted onto new orders.
type CatalogPort interface {
	UnitPrice(ctx context.Context, productID int64) (float64, error)
}

// SupplierPort answers whether a supplier may back purchase orders.
type SupplierPort interface {
	IsApproved(ctx context.Context, id int64) (bool, error)
}

// AuditPort records workflow actions.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// TaskEnqueuer hands completed-invoice notifications to the background worker.
type TaskEnqueuer interface {
	EnqueueInvoiceNotify(ctx context.Context, invoiceID, orderID int64) error
}

// Service drives the purchase-order fulfillment workflow.
type Service struct {
	repo      RepositoryPort
	products  CatalogPort
	suppliers SupplierPort
	audit     AuditPort
	idem      *shared.IdempotencyStore
	tasks     TaskEnqueuer
	gate      *RoleGate
	graceDays int
}

// NewService constructs the workflow service. tasks may be nil when no worker
// is wired, notifications are then skipped.
func NewService(repo RepositoryPort, products CatalogPort, supplierDir SupplierPort, audit AuditPort,
	idem *shared.IdempotencyStore, tasks TaskEnqueuer, graceDays int) *Service {
	if graceDays <= 0 {
		graceDays = 14
	}
	return &Service{
		repo:      repo,
		products:  products,
		suppliers: supplierDir,
		audit:     audit,
		idem:      idem,
		tasks:     tasks,
		gate:      NewRoleGate(),
		graceDays: graceDays,
	}
}

// CreateOrderInput is the validated payload for CreateOrder. PricePerUnit nil
// means snapshot the catalog's current price.
type CreateOrderInput struct {
	ProductID            int64
	SupplierID           int64
	Quantity             int64
	PricePerUnit         *float64
	ExpectedDeliveryDate time.Time
	IdempotencyKey       string
}

// CreateOrder places a PENDING purchase order with the supplier. The unit
// price is snapshotted from the catalog at creation time.
func (s *Service) CreateOrder(ctx context.Context, actor auth.Actor, in CreateOrderInput) (PurchaseOrder, error) {
	if in.Quantity <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if in.ProductID <= 0 || in.SupplierID <= 0 {
		return PurchaseOrder{}, fmt.Errorf("%w: product and supplier are required", ErrValidation)
	}
	if in.ExpectedDeliveryDate.IsZero() {
		return PurchaseOrder{}, fmt.Errorf("%w: expected_delivery_date is required", ErrValidation)
	}

	approved, err := s.suppliers.IsApproved(ctx, in.SupplierID)
	if err != nil {
		if errors.Is(err, suppliers.ErrNotFound) {
			return PurchaseOrder{}, fmt.Errorf("%w: supplier %d", ErrSupplierNotApproved, in.SupplierID)
		}
		return PurchaseOrder{}, err
	}
	if !approved {
		return PurchaseOrder{}, fmt.Errorf("%w: supplier %d", ErrSupplierNotApproved, in.SupplierID)
	}

	// the catalog lookup doubles as the product existence check
	price, err := s.products.UnitPrice(ctx, in.ProductID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if in.PricePerUnit != nil {
		if *in.PricePerUnit < 0 {
			return PurchaseOrder{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		price = *in.PricePerUnit
	}

	if in.IdempotencyKey != "" {
		if err := s.idem.CheckAndInsert(ctx, in.IdempotencyKey, "orders"); err != nil {
			return PurchaseOrder{}, err
		}
	}

	now := time.Now().UTC()
	order := PurchaseOrder{
		Number:               fmt.Sprintf("PO-%d", now.UnixNano()),
		ProductID:            in.ProductID,
		SupplierID:           in.SupplierID,
		Quantity:             in.Quantity,
		PricePerUnit:         price,
		Status:               StatusPending,
		OrderDate:            now,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
	}
	id, err := s.repo.Create(ctx, order)
	if err != nil {
		if in.IdempotencyKey != "" {
			_ = s.idem.Delete(ctx, in.IdempotencyKey)
		}
		return PurchaseOrder{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.UserID,
			Action:   "PO_CREATE",
			Entity:   "purchase_order",
			EntityID: fmt.Sprintf("%d", id),
			Meta:     map[string]any{"supplier_id": in.SupplierID, "product_id": in.ProductID, "quantity": in.Quantity},
		})
	}
	return s.repo.Get(ctx, id)
}

// GetOrder fetches an order, scoped to the actor. Suppliers only see their own.
func (s *Service) GetOrder(ctx context.Context, actor auth.Actor, id int64) (PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if actor.Role == auth.RoleSupplier && actor.SupplierID != order.SupplierID {
		return PurchaseOrder{}, fmt.Errorf("%w: supplier %d does not own order %d", ErrUnauthorized, actor.SupplierID, id)
	}
	return order, nil
}

// ListOrders returns orders visible to the actor.
func (s *Service) ListOrders(ctx context.Context, actor auth.Actor, filters ListFilters, limit, offset int) ([]PurchaseOrder, error) {
	if actor.Role == auth.RoleSupplier {
		filters.SupplierID = actor.SupplierID
	}
	return s.repo.List(ctx, filters, limit, offset)
}

// RequestTransition moves an order along the workflow graph on behalf of the
// actor. A request for the current status is an idempotent no-op. The terminal
// DELIVERED -> COMPLETED edge additionally credits stock and issues the
// invoice, all inside one transaction.
func (s *Service) RequestTransition(ctx context.Context, actor auth.Actor, orderID int64, requested Status, meta TransitionMetadata) (PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if actor.Role == auth.RoleSupplier && actor.SupplierID != order.SupplierID {
		return PurchaseOrder{}, fmt.Errorf("%w: supplier %d does not own order %d", ErrUnauthorized, actor.SupplierID, orderID)
	}
	if requested == order.Status {
		return order, nil
	}
	if err := ValidateTransition(order, requested, meta); err != nil {
		return PurchaseOrder{}, err
	}
	if err := s.gate.Authorize(actor, order, requested); err != nil {
		return PurchaseOrder{}, err
	}

	updated := ApplyTransition(order, requested, meta, time.Now().UTC())

	if requested == StatusCompleted {
		return s.complete(ctx, actor, order, updated)
	}

	if err := s.repo.UpdateTransition(ctx, updated, order.Status); err != nil {
		return PurchaseOrder{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.UserID,
			Action:   "PO_TRANSITION",
			Entity:   "purchase_order",
			EntityID: fmt.Sprintf("%d", orderID),
			Meta:     map[string]any{"from": order.Status, "to": requested},
		})
	}
	return s.repo.Get(ctx, orderID)
}

// complete performs the terminal transition. The invoice number is derived
// from the order id, so a retry can never mint a second number for the same
// order even if it slips past every other guard.
func (s *Service) complete(ctx context.Context, actor auth.Actor, prev, updated PurchaseOrder) (PurchaseOrder, error) {
	if prev.InvoiceID != nil {
		return PurchaseOrder{}, fmt.Errorf("%w: invoice %d already issued", ErrDuplicateCompletion, *prev.InvoiceID)
	}

	now := time.Now().UTC()
	inv := invoices.Invoice{
		Number:     fmt.Sprintf("INV-%s", uuid.NewSHA1(uuid.Nil, []byte(fmt.Sprintf("purchase-order:%d", prev.ID)))),
		OrderID:    prev.ID,
		SupplierID: prev.SupplierID,
		Amount:     prev.TotalPrice(),
		Status:     invoices.StatusPending,
		IssuedAt:   now,
		DueDate:    now.AddDate(0, 0, s.graceDays),
	}

	res, err := s.repo.Complete(ctx, updated, prev.Status, inv)
	if err != nil {
		if errors.Is(err, invoices.ErrDuplicate) {
			return PurchaseOrder{}, fmt.Errorf("%w: order %d", ErrDuplicateCompletion, prev.ID)
		}
		return PurchaseOrder{}, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.UserID,
			Action:   "PO_COMPLETED",
			Entity:   "purchase_order",
			EntityID: fmt.Sprintf("%d", prev.ID),
			Meta:     map[string]any{"invoice_id": res.InvoiceID, "credited_qty": prev.Quantity, "stock": res.Stock},
		})
	}
	if s.tasks != nil {
		if err := s.tasks.EnqueueInvoiceNotify(ctx, res.InvoiceID, prev.ID); err != nil && s.audit != nil {
			_ = s.audit.Record(ctx, shared.AuditLog{
				Action:   "INVOICE_NOTIFY_ENQUEUE_FAILED",
				Entity:   "invoice",
				EntityID: fmt.Sprintf("%d", res.InvoiceID),
				Meta:     map[string]any{"error": err.Error()},
			})
		}
	}
	return s.repo.Get(ctx, prev.ID)
}
