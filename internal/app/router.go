package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/catalog"
	"github.com/shoplite/shoplite/internal/inventory"
	"github.com/shoplite/shoplite/internal/invoices"
	"github.com/shoplite/shoplite/internal/orders"
	"github.com/shoplite/shoplite/internal/suppliers"
	"github.com/shoplite/shoplite/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthMiddleware   auth.Middleware
	OrdersHandler    *orders.Handler
	InventoryHandler *inventory.Handler
	InvoicesHandler  *invoices.Handler
	SuppliersHandler *suppliers.Handler
	CatalogHandler   *catalog.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Shoplite defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.Authenticate)

		r.Route("/orders", params.OrdersHandler.MountRoutes)
		r.Route("/inventory", params.InventoryHandler.MountRoutes)
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
		r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/catalog", params.CatalogHandler.MountRoutes)

		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
