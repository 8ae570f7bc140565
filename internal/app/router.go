package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/khata-app/khata-server/internal/auth"
	"github.com/khata-app/khata-server/internal/invoices"
	"github.com/khata-app/khata-server/internal/ledger"
	"github.com/khata-app/khata-server/internal/observability"
	"github.com/khata-app/khata-server/internal/parties"
	"github.com/khata-app/khata-server/internal/payments"
	"github.com/khata-app/khata-server/internal/personal/contacts"
	"github.com/khata-app/khata-server/internal/personal/spending"
	"github.com/khata-app/khata-server/internal/personal/transactions"
	"github.com/khata-app/khata-server/internal/products"
	"github.com/khata-app/khata-server/internal/reports"
	"github.com/khata-app/khata-server/internal/stock"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler         *auth.Handler
	AuthMiddleware      func(http.Handler) http.Handler
	PartiesHandler      *parties.Handler
	LedgerHandler       *ledger.Handler
	InvoicesHandler     *invoices.Handler
	PaymentsHandler     *payments.Handler
	ProductsHandler     *products.Handler
	StockHandler        *stock.Handler
	ContactsHandler     *contacts.Handler
	PersonalTxnHandler  *transactions.Handler
	SpendingHandler     *spending.Handler
	ReportsHandler      *reports.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router for the API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Everything below requires a resolved owner identity.
	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware)
		r.Route("/parties", params.PartiesHandler.MountRoutes)
		r.Route("/transactions", params.LedgerHandler.MountRoutes)
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
		r.Route("/payments", params.PaymentsHandler.MountRoutes)
		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/stock", params.StockHandler.MountRoutes)
		r.Route("/personal-contacts", params.ContactsHandler.MountRoutes)
		r.Route("/personal-transactions", params.PersonalTxnHandler.MountRoutes)
		params.SpendingHandler.MountRoutes(r)
		params.ReportsHandler.MountRoutes(r)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
