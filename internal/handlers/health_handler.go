package handlers

import (
	"net/http"

	"travel-backend/internal/health"
	"travel-backend/pkg/utils"
)

// HealthHandler exposes liveness information
type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
