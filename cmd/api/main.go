package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hauptbau/fieldops-api/docs"
	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/database"
	"github.com/hauptbau/fieldops-api/internal/erp"
	"github.com/hauptbau/fieldops-api/internal/http/handler"
	"github.com/hauptbau/fieldops-api/internal/http/middleware"
	"github.com/hauptbau/fieldops-api/internal/http/router"
	"github.com/hauptbau/fieldops-api/internal/jobs"
	"github.com/hauptbau/fieldops-api/internal/logger"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/internal/storage"
	"go.uber.org/zap"
)

// @title FieldOps API
// @version 1.0
// @description Construction field operations backend: projects with bills of quantities, subcontractor assignments, material orders, time tracking, photo documentation and budget breakdowns

// @contact.name API Support
// @contact.email it@hauptbau.de

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "fieldops-staging.hauptbau.de"
	case "production":
		docs.SwaggerInfo.Host = "fieldops.hauptbau.de"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize the ERP connection (optional, read-only). It serves the
	// long-form LV position texts and the app runs fine without it.
	var erpClient *erp.Client
	if cfg.ERP.Enabled {
		erpClient, err = erp.NewClient(&cfg.ERP, log)
		if err != nil {
			log.Warn("ERP connection failed, continuing without it", zap.Error(err))
		} else if erpClient != nil {
			log.Info("ERP connected",
				zap.Int("max_open_conns", cfg.ERP.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.ERP.QueryTimeout),
			)
		}
	} else {
		log.Info("ERP not configured, long texts unavailable")
	}

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	addendumRepo := repository.NewAddendumRepository(db)
	subcontractorRepo := repository.NewSubcontractorRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	draftRepo := repository.NewBillingDraftRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	photoRepo := repository.NewPhotoDocumentRepository(db)
	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewExternalInvoiceRepository(db)

	// Initialize services
	projectService := service.NewProjectService(projectRepo, addendumRepo, log)
	detailService := service.NewProjectDetailService(projectRepo, assignmentRepo, &cfg.Company, &cfg.Resolver, log)
	financeService := service.NewFinanceService(projectRepo, addendumRepo, orderRepo, draftRepo, timeEntryRepo, invoiceRepo, &cfg.Finance, log)
	subcontractorService := service.NewSubcontractorService(subcontractorRepo, assignmentRepo, projectRepo, log)
	orderService := service.NewOrderService(orderRepo, projectRepo, log)
	timeTrackingService := service.NewTimeTrackingService(timeEntryRepo, employeeRepo, projectRepo, log)
	documentationService := service.NewDocumentationService(photoRepo, projectRepo, fileStorage, log)

	tokenService, err := auth.NewTokenService(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	authService := service.NewAuthService(userRepo, tokenService, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokenService, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	projectHandler := handler.NewProjectHandler(projectService, detailService, erpClient, log)
	financeHandler := handler.NewFinanceHandler(financeService, log)
	subcontractorHandler := handler.NewSubcontractorHandler(subcontractorService, detailService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	timeTrackingHandler := handler.NewTimeTrackingHandler(timeTrackingService, log)
	documentationHandler := handler.NewDocumentationHandler(documentationService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		erpClient,
		authMiddleware,
		rateLimiter,
		authHandler,
		projectHandler,
		financeHandler,
		subcontractorHandler,
		orderHandler,
		timeTrackingHandler,
		documentationHandler,
	)

	// Start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.FinanceRollupEnabled {
		scheduler = jobs.NewScheduler(log)

		rollup := jobs.NewFinanceRollupJob(projectRepo, financeService, log, cfg.Jobs.FinanceRollupTimeoutDuration())
		if err := scheduler.AddJob(jobs.FinanceRollupJobName, cfg.Jobs.FinanceRollupCron, rollup.Run); err != nil {
			log.Error("Failed to register finance rollup job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with finance rollup job",
				zap.String("cron_expr", cfg.Jobs.FinanceRollupCron),
				zap.Duration("timeout", cfg.Jobs.FinanceRollupTimeoutDuration()),
			)
		}
	} else {
		log.Info("Finance rollup job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if erpClient != nil {
			if err := erpClient.Close(); err != nil {
				log.Warn("Error closing ERP connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
