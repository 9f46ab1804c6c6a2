// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bitbank/ledger/internal/integration/entrypoint/controller"
	"github.com/bitbank/ledger/internal/integration/entrypoint/middleware"
	"github.com/bitbank/ledger/internal/integration/entrypoint/validator"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	ledgerController     *controller.LedgerController
	statisticsController *controller.StatisticsController
	writeRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// authMiddleware and writeRateLimiter may be nil.
func NewRouter(
	healthController *controller.HealthController,
	ledgerController *controller.LedgerController,
	statisticsController *controller.StatisticsController,
	writeRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		ledgerController:     ledgerController,
		statisticsController: statisticsController,
		writeRateLimiter:     writeRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	validator.Register()

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
	v1 := r.engine.Group("/api/v1")

	ledger := v1.Group("/ledger")
	if r.authMiddleware != nil {
		ledger.Use(r.authMiddleware.Authenticate())
	}
	{
		if r.ledgerController != nil {
			record := []gin.HandlerFunc{r.ledgerController.Record}
			if r.writeRateLimiter != nil {
				record = append([]gin.HandlerFunc{r.writeRateLimiter.Middleware()}, record...)
			}
			ledger.POST("/entries", record...)
			ledger.POST("/search", r.ledgerController.Search)
		}

		if r.statisticsController != nil {
			ledger.GET("/statistics/:kind", r.statisticsController.Get)
		}
	}
}
