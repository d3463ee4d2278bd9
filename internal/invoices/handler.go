package invoices

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/platform/httpx"
	"github.com/shoplite/shoplite/internal/shared"
)

// Handler exposes invoice endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	auth    auth.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authmw auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: authmw}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireRole(auth.RoleAdmin))
		r.Post("/{id}/pay", h.handleMarkPaid)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rawLimit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rawOffset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, offset := shared.LimitOffset(rawLimit, rawOffset)
	supplierID, _ := strconv.ParseInt(r.URL.Query().Get("supplier_id"), 10, 64)
	filters := ListFilters{
		Status:     Status(r.URL.Query().Get("status")),
		SupplierID: supplierID,
	}
	if actor := auth.ActorFromContext(r.Context()); actor != nil && actor.Role == auth.RoleSupplier {
		filters.SupplierID = actor.SupplierID
	}
	invoices, err := h.service.List(r.Context(), filters, limit, offset)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, err, id, "get invoice")
		return
	}
	if actor := auth.ActorFromContext(r.Context()); actor != nil && actor.Role == auth.RoleSupplier && actor.SupplierID != inv.SupplierID {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "invoice belongs to another supplier")
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var actorID int64
	if actor := auth.ActorFromContext(r.Context()); actor != nil {
		actorID = actor.UserID
	}
	inv, err := h.service.MarkPaid(r.Context(), id, actorID)
	if err != nil {
		h.respondErr(w, err, id, "mark invoice paid")
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, id int64, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrAlreadyPaid):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
	}
}
