package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hauptbau/fieldops-api/internal/auth"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/database"
	"github.com/hauptbau/fieldops-api/internal/domain"
	"github.com/hauptbau/fieldops-api/internal/erp"
	"github.com/hauptbau/fieldops-api/internal/http/handler"
	"github.com/hauptbau/fieldops-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/hauptbau/fieldops-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                  *config.Config
	logger               *zap.Logger
	db                   *gorm.DB
	erpClient            *erp.Client
	authMiddleware       *auth.Middleware
	rateLimiter          *middleware.RateLimiter
	authHandler          *handler.AuthHandler
	projectHandler       *handler.ProjectHandler
	financeHandler       *handler.FinanceHandler
	subcontractorHandler *handler.SubcontractorHandler
	orderHandler         *handler.OrderHandler
	timeTrackingHandler  *handler.TimeTrackingHandler
	documentationHandler *handler.DocumentationHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	erpClient *erp.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	financeHandler *handler.FinanceHandler,
	subcontractorHandler *handler.SubcontractorHandler,
	orderHandler *handler.OrderHandler,
	timeTrackingHandler *handler.TimeTrackingHandler,
	documentationHandler *handler.DocumentationHandler,
) *Router {
	return &Router{
		cfg:                  cfg,
		logger:               logger,
		db:                   db,
		erpClient:            erpClient,
		authMiddleware:       authMiddleware,
		rateLimiter:          rateLimiter,
		authHandler:          authHandler,
		projectHandler:       projectHandler,
		financeHandler:       financeHandler,
		subcontractorHandler: subcontractorHandler,
		orderHandler:         orderHandler,
		timeTrackingHandler:  timeTrackingHandler,
		documentationHandler: documentationHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if _, err := database.HealthCheckWithStats(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// The ERP link is optional; an unhealthy ERP does not fail readiness,
		// long texts simply stay unavailable.
		if rt.erpClient != nil && rt.erpClient.IsEnabled() {
			status := rt.erpClient.HealthCheck(r.Context())
			checks["erp"] = status
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": healthWord(allHealthy),
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/auth/me", rt.authHandler.Me)

			// Subcontractors
			r.Route("/subcontractors", func(r chi.Router) {
				r.Get("/", rt.subcontractorHandler.List)
				r.Get("/{id}", rt.subcontractorHandler.Get)
				r.With(rt.manageOnly()).Post("/", rt.subcontractorHandler.Create)
			})

			// Projects and their sub-resources
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.With(rt.manageOnly()).Post("/", rt.projectHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rt.projectHandler.Get)
					r.Get("/detail", rt.projectHandler.Detail)
					r.Get("/positions/{positionId}/longtext", rt.projectHandler.PositionLongText)
					r.Post("/detail/refresh", rt.projectHandler.Refresh)
					r.With(rt.manageOnly()).Put("/status", rt.projectHandler.UpdateStatus)
					r.With(rt.adminOnly()).Delete("/", rt.projectHandler.Delete)

					// Addenda
					r.Get("/addenda", rt.projectHandler.ListAddenda)
					r.With(rt.manageOnly()).Post("/addenda", rt.projectHandler.CreateAddendum)
					r.With(rt.manageOnly()).Put("/addenda/{addendumId}/status", rt.projectHandler.UpdateAddendumStatus)

					// Finance
					r.With(rt.manageOnly()).Get("/finance", rt.financeHandler.Breakdown)
					r.With(rt.manageOnly()).Get("/finance/labor", rt.financeHandler.LaborDetail)
					r.With(rt.manageOnly()).Get("/external-invoices", rt.financeHandler.ListExternalInvoices)
					r.With(rt.manageOnly()).Post("/external-invoices", rt.financeHandler.CreateExternalInvoice)

					// Assignments
					r.Get("/assignments", rt.subcontractorHandler.ListAssignments)
					r.With(rt.manageOnly()).Post("/assignments", rt.subcontractorHandler.CreateAssignment)
					r.With(rt.manageOnly()).Put("/assignments/{assignmentId}/status", rt.subcontractorHandler.UpdateAssignmentStatus)
					r.With(rt.manageOnly()).Delete("/assignments/{assignmentId}", rt.subcontractorHandler.DeleteAssignment)

					// Orders
					r.Get("/orders", rt.orderHandler.List)
					r.Post("/orders", rt.orderHandler.Create)
					r.Get("/orders/{orderId}", rt.orderHandler.Get)
					r.With(rt.manageOnly()).Put("/orders/{orderId}/status", rt.orderHandler.UpdateStatus)

					// Time tracking
					r.Get("/time-entries", rt.timeTrackingHandler.List)
					r.Post("/time-entries/clock-in", rt.timeTrackingHandler.ClockIn)
					r.Post("/time-entries/clock-out", rt.timeTrackingHandler.ClockOut)

					// Photo documentation
					r.Get("/photos", rt.documentationHandler.List)
					r.Post("/photos", rt.documentationHandler.Upload)
					r.Get("/photos/{photoId}/download", rt.documentationHandler.Download)
					r.With(rt.manageOnly()).Delete("/photos/{photoId}", rt.documentationHandler.Delete)
				})
			})
		})
	})

	return r
}

// manageOnly restricts a route to admins and site managers.
func (rt *Router) manageOnly() func(http.Handler) http.Handler {
	return rt.authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleSiteManager)
}

func (rt *Router) adminOnly() func(http.Handler) http.Handler {
	return rt.authMiddleware.RequireRole(domain.RoleAdmin)
}

func healthWord(healthy bool) string {
	if healthy {
		return "healthy"
	}
	return "unhealthy"
}
