package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/inventory"
	"github.com/shoplite/shoplite/internal/platform/httpx"
	"github.com/shoplite/shoplite/internal/shared"
)

// Handler exposes purchase-order endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	auth     auth.Middleware
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authmw auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: authmw, validate: validator.New()}
}

// MountRoutes registers purchase-order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Post("/{id}/transition", h.handleTransition)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.handleCreate)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	var req createOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	order, err := h.service.CreateOrder(r.Context(), *actor, CreateOrderInput{
		ProductID:            req.ProductID,
		SupplierID:           req.SupplierID,
		Quantity:             req.Quantity,
		PricePerUnit:         req.PricePerUnit,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		IdempotencyKey:       r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.respondErr(w, err, "create order")
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(order))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	rawLimit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rawOffset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, offset := shared.LimitOffset(rawLimit, rawOffset)
	supplierID, _ := strconv.ParseInt(r.URL.Query().Get("supplier_id"), 10, 64)
	productID, _ := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	filters := ListFilters{
		Status:     Status(r.URL.Query().Get("status")),
		SupplierID: supplierID,
		ProductID:  productID,
	}
	if filters.Status != "" && !filters.Status.IsValid() {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown status filter")
		return
	}
	orders, err := h.service.ListOrders(r.Context(), *actor, filters, limit, offset)
	if err != nil {
		h.respondErr(w, err, "list orders")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": toResponseList(orders)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	order, err := h.service.GetOrder(r.Context(), *actor, id)
	if err != nil {
		h.respondErr(w, err, "get order")
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var req transitionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	order, err := h.service.RequestTransition(r.Context(), *actor, id, req.Status, TransitionMetadata{
		ActualDeliveryDate: req.ActualDeliveryDate,
		DeliveryNotes:      req.DeliveryNotes,
		Reason:             req.Reason,
	})
	if err != nil {
		h.respondErr(w, err, "transition order")
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(order))
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, ErrUnauthorized):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrDuplicateCompletion):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrSupplierNotApproved):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	case errors.Is(err, inventory.ErrItemNotFound):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	case errors.Is(err, shared.ErrIdempotencyConflict):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
