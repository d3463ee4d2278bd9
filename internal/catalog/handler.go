package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/platform/httpx"
	"github.com/shoplite/shoplite/internal/shared"
)

type createProductRequest struct {
	SKU          string  `json:"sku" validate:"required,min=2,max=64"`
	Name         string  `json:"name" validate:"required,min=2,max=160"`
	Description  string  `json:"description" validate:"max=2000"`
	CurrentPrice float64 `json:"current_price" validate:"gte=0"`
}

type updatePriceRequest struct {
	CurrentPrice float64 `json:"current_price" validate:"gte=0"`
}

// Handler exposes catalog endpoints.
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

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.handleCreate)
		r.Put("/{id}/price", h.handleUpdatePrice)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rawLimit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rawOffset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, offset := shared.LimitOffset(rawLimit, rawOffset)
	products, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.respondErr(w, err, "list products")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, err, "get product")
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	p, err := h.service.Create(r.Context(), Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		CurrentPrice: req.CurrentPrice,
	})
	if err != nil {
		h.respondErr(w, err, "create product")
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var req updatePriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	p, err := h.service.UpdatePrice(r.Context(), id, req.CurrentPrice)
	if err != nil {
		h.respondErr(w, err, "update product price")
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateSKU):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
