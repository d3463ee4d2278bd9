package suppliers

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

type applyRequest struct {
	CompanyName  string `json:"company_name" validate:"required,min=2,max=120"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=32"`
}

// Handler exposes supplier directory endpoints.
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

// MountRoutes registers supplier routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleApply)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireRole(auth.RoleAdmin))
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/approve", h.handleApprove)
	})
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	rec, err := h.service.Apply(r.Context(), req.CompanyName, req.ContactEmail, req.Phone)
	if err != nil {
		h.respondErr(w, err, "apply supplier")
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rawLimit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rawOffset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, offset := shared.LimitOffset(rawLimit, rawOffset)
	kind := Kind(r.URL.Query().Get("kind"))
	records, err := h.service.List(r.Context(), kind, limit, offset)
	if err != nil {
		h.respondErr(w, err, "list suppliers")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"suppliers": records})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, err, "get supplier")
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var actorID int64
	if actor := auth.ActorFromContext(r.Context()); actor != nil {
		actorID = actor.UserID
	}
	rec, err := h.service.Approve(r.Context(), id, actorID)
	if err != nil {
		h.respondErr(w, err, "approve supplier")
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrAlreadyApproved):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
