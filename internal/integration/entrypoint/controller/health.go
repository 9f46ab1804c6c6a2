package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker     HealthChecker
	cacheHealthChecker  HealthChecker
	brokerHealthChecker HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Broker    string `json:"broker"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil cache or broker checker reports the dependency as disabled.
func NewHealthController(db, cache, broker HealthChecker) *HealthController {
	return &HealthController{
		dbHealthChecker:     db,
		cacheHealthChecker:  cache,
		brokerHealthChecker: broker,
	}
}

// Check handles GET /health requests.
// The service is degraded only when the database is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Cache:     dependencyStatus(h.cacheHealthChecker),
		Broker:    dependencyStatus(h.brokerHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if dbStatus != "connected" {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, response)
}

func dependencyStatus(check HealthChecker) string {
	switch {
	case check == nil:
		return "disabled"
	case check():
		return "connected"
	default:
		return "disconnected"
	}
}
