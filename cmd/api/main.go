// Package main is the entry point for the irrigation-agency finance API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gestion-irrigation/backend/config"
	"github.com/gestion-irrigation/backend/internal/application/usecase/contract"
	"github.com/gestion-irrigation/backend/internal/application/usecase/expense"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/application/usecase/report"
	"github.com/gestion-irrigation/backend/internal/application/usecase/settlement"
	"github.com/gestion-irrigation/backend/internal/infra/db"
	"github.com/gestion-irrigation/backend/internal/infra/server/router"
	"github.com/gestion-irrigation/backend/internal/integration/adapters"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/controller"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/middleware"
	"github.com/gestion-irrigation/backend/internal/integration/export"
	"github.com/gestion-irrigation/backend/internal/integration/persistence"
	"github.com/gestion-irrigation/backend/internal/integration/persistence/model"
	"github.com/gestion-irrigation/backend/internal/integration/realtime"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Gestion Irrigation API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.MarketModel{},
		&model.ContractModel{},
		&model.SettlementModel{},
		&model.ExpenseModel{},
		&model.UserProfileModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Initialize Redis connection for the change feed
	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	// Create repositories
	contractRepo := persistence.NewContractRepository(database.DB())
	settlementRepo := persistence.NewSettlementRepository(database.DB())
	expenseRepo := persistence.NewExpenseRepository(database.DB())
	profileRepo := persistence.NewUserProfileRepository(database.DB())

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	changeFeed := realtime.NewRedisChangeFeed(redisClient)
	excelExporter := export.NewExcelExporter()
	pdfGenerator := export.NewPDFReportGenerator()

	// Create finance pipeline
	holder := finance.NewSnapshotHolder()
	refreshUseCase := finance.NewRefreshOverviewUseCase(contractRepo, settlementRepo, expenseRepo, holder)
	watcher := finance.NewChangeWatcher(changeFeed, refreshUseCase, cfg.Finance.DebounceWindow)

	// Create mutation use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, changeFeed, refreshUseCase, cfg.Finance.MutationTimeout)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, changeFeed, refreshUseCase)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, changeFeed, refreshUseCase)
	createSettlementUseCase := settlement.NewCreateSettlementUseCase(settlementRepo, contractRepo, changeFeed, refreshUseCase)
	updateSettlementUseCase := settlement.NewUpdateSettlementUseCase(settlementRepo, changeFeed, refreshUseCase)
	deleteSettlementUseCase := settlement.NewDeleteSettlementUseCase(settlementRepo, changeFeed, refreshUseCase)
	updatePaymentStatusUseCase := contract.NewUpdatePaymentStatusUseCase(contractRepo, profileRepo, changeFeed, refreshUseCase)

	// Create reporting use cases
	exportUseCase := report.NewExportFinancialDataUseCase(holder, excelExporter)
	reportUseCase := report.NewGenerateReportUseCase(holder, pdfGenerator)

	// Create controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck, db.RedisHealthCheck(redisClient))
	financeController := controller.NewFinanceController(holder, refreshUseCase, exportUseCase, reportUseCase)
	expenseController := controller.NewExpenseController(createExpenseUseCase, updateExpenseUseCase, deleteExpenseUseCase)
	settlementController := controller.NewSettlementController(createSettlementUseCase, updateSettlementUseCase, deleteSettlementUseCase)
	contractController := controller.NewContractController(updatePaymentStatusUseCase)
	reportRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Finance.ReportRateLimit, cfg.Finance.ReportRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Setup router
	r := router.NewRouter(
		healthController,
		financeController,
		expenseController,
		settlementController,
		contractController,
		reportRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Compute the initial snapshot before serving traffic. A failure is
	// logged but not fatal: the first request or change event retries.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := refreshUseCase.Execute(startupCtx); err != nil {
		slog.Warn("Initial financial snapshot failed", "error", err)
	}
	cancelStartup()

	// Start the change watcher
	watcherCtx, cancelWatcher := context.WithCancel(context.Background())
	defer cancelWatcher()
	go func() {
		if err := watcher.Run(watcherCtx); err != nil && watcherCtx.Err() == nil {
			slog.Error("Change watcher stopped", "error", err)
		}
	}()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	cancelWatcher()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
