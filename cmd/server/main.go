package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"waterbill-backend/internal/cache"
	"waterbill-backend/internal/config"
	"waterbill-backend/internal/database"
	"waterbill-backend/internal/db"
	"waterbill-backend/internal/handlers"
	"waterbill-backend/internal/health"
	h "waterbill-backend/internal/http"
	"waterbill-backend/internal/middleware"
	"waterbill-backend/internal/repositories"
	"waterbill-backend/internal/services"
	"waterbill-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; record reads fall through to Postgres without it.
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, continuing without cache: %v", err)
	}

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Repositories
	billingRepo := repositories.NewBillingRecordRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)

	// Services
	customerService := services.NewCustomerService(customerRepo)
	recordService := services.NewRecordService(billingRepo, customerRepo, notificationRepo, cfg.Billing.RatePerCubic)
	paymentService := services.NewPaymentService(billingRepo, notificationRepo, receiptRepo, cfg.Billing.AmountTolerance)
	notificationService := services.NewNotificationService(notificationRepo)
	overdueService := services.NewOverdueService(billingRepo, notificationRepo, cfg.Billing.OverdueGraceDays)
	reportService := services.NewReportService(billingRepo, customerRepo)

	// Handlers
	customerHandler := handlers.NewCustomerHandler(customerService, recordService, notificationService)
	recordHandler := handlers.NewRecordHandler(recordService, receiptRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	overdueHandler := handlers.NewOverdueHandler(overdueService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(
		customerHandler,
		recordHandler,
		paymentHandler,
		notificationHandler,
		overdueHandler,
		reportHandler,
		healthHandler,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestID(
				corsMiddleware(router),
			),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
