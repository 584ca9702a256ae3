// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/controller"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	financeController    *controller.FinanceController
	expenseController    *controller.ExpenseController
	settlementController *controller.SettlementController
	contractController   *controller.ContractController
	reportRateLimiter    *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	financeController *controller.FinanceController,
	expenseController *controller.ExpenseController,
	settlementController *controller.SettlementController,
	contractController *controller.ContractController,
	reportRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		financeController:    financeController,
		expenseController:    expenseController,
		settlementController: settlementController,
		contractController:   contractController,
		reportRateLimiter:    reportRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Finance routes (require authentication)
		if r.financeController != nil && r.authMiddleware != nil {
			finances := v1.Group("/finances")
			finances.Use(r.authMiddleware.Authenticate())
			{
				finances.GET("", r.financeController.GetOverview)
				finances.GET("/snapshot", r.financeController.GetSnapshotStatus)
				finances.POST("/refresh", r.financeController.Refresh)

				// Rendering exports and reports is expensive, so those
				// downloads are rate limited per client.
				if r.reportRateLimiter != nil {
					finances.GET("/export", r.reportRateLimiter.Middleware(), r.financeController.Export)
					finances.GET("/report", r.reportRateLimiter.Middleware(), r.financeController.GenerateReport)
				} else {
					finances.GET("/export", r.financeController.Export)
					finances.GET("/report", r.financeController.GenerateReport)
				}
			}
		}

		// Expense routes (require authentication)
		if r.expenseController != nil && r.authMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.authMiddleware.Authenticate())
			{
				expenses.POST("", r.expenseController.Create)
				expenses.PATCH("/:id", r.expenseController.Update)
				expenses.DELETE("/:id", r.expenseController.Delete)
			}
		}

		// Settlement routes (require authentication)
		if r.settlementController != nil && r.authMiddleware != nil {
			settlements := v1.Group("/settlements")
			settlements.Use(r.authMiddleware.Authenticate())
			{
				settlements.POST("", r.settlementController.Create)
				settlements.PATCH("/:id", r.settlementController.Update)
				settlements.DELETE("/:id", r.settlementController.Delete)
			}
		}

		// Contract payment routes (require authentication; role check is
		// enforced by the use case)
		if r.contractController != nil && r.authMiddleware != nil {
			contracts := v1.Group("/contracts")
			contracts.Use(r.authMiddleware.Authenticate())
			{
				contracts.PATCH("/:id/payment-status", r.contractController.UpdatePaymentStatus)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
