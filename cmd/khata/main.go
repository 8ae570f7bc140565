package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/khata-app/khata-server/internal/app"
	"github.com/khata-app/khata-server/internal/auth"
	"github.com/khata-app/khata-server/internal/invoices"
	"github.com/khata-app/khata-server/internal/ledger"
	"github.com/khata-app/khata-server/internal/observability"
	"github.com/khata-app/khata-server/internal/parties"
	"github.com/khata-app/khata-server/internal/payments"
	"github.com/khata-app/khata-server/internal/personal/contacts"
	"github.com/khata-app/khata-server/internal/personal/spending"
	"github.com/khata-app/khata-server/internal/personal/transactions"
	"github.com/khata-app/khata-server/internal/platform/cache"
	"github.com/khata-app/khata-server/internal/platform/db"
	"github.com/khata-app/khata-server/internal/products"
	"github.com/khata-app/khata-server/internal/reports"
	"github.com/khata-app/khata-server/internal/shared"
	"github.com/khata-app/khata-server/internal/stock"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	tokenIssuer := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	otpStore := auth.NewOTPStore(redisClient, cfg.OTPTTL)
	authService := auth.NewService(auth.NewRepository(pool), otpStore, tokenIssuer)
	requireOwner := auth.RequireOwner(tokenIssuer)
	authHandler := auth.NewHandler(logger, authService, requireOwner, !cfg.IsProduction())

	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo, auditLogger)
	partiesService := parties.NewService(parties.NewRepository(pool), ledgerRepo, auditLogger)
	productsService := products.NewService(products.NewRepository(pool))
	stockService := stock.NewService(stock.NewRepository(pool))
	invoicesService := invoices.NewService(invoices.NewRepository(pool), auditLogger)
	paymentsService := payments.NewService(payments.NewRepository(pool), auditLogger)
	contactsService := contacts.NewService(contacts.NewRepository(pool))
	personalTxnService := transactions.NewService(transactions.NewRepository(pool))
	spendingService := spending.NewService(spending.NewRepository(pool))
	reportsService := reports.NewService(reports.NewRepository(pool))

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthMiddleware:     requireOwner,
		PartiesHandler:     parties.NewHandler(logger, partiesService),
		LedgerHandler:      ledger.NewHandler(logger, ledgerService),
		InvoicesHandler:    invoices.NewHandler(logger, invoicesService),
		PaymentsHandler:    payments.NewHandler(logger, paymentsService),
		ProductsHandler:    products.NewHandler(logger, productsService),
		StockHandler:       stock.NewHandler(logger, stockService),
		ContactsHandler:    contacts.NewHandler(logger, contactsService),
		PersonalTxnHandler: transactions.NewHandler(logger, personalTxnService),
		SpendingHandler:    spending.NewHandler(logger, spendingService),
		ReportsHandler:     reports.NewHandler(logger, reportsService),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
