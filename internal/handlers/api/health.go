package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"titan/internal/ledger"
)

// HealthHandler reports whether the service can reach its ledger.
type HealthHandler struct {
	ledger  ledger.Ledger
	backend string
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(l ledger.Ledger, backend string) *HealthHandler {
	return &HealthHandler{ledger: l, backend: backend}
}

// Check reads the ledger and returns 503 if it is unavailable.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	if _, err := h.ledger.Usage(ctx); err != nil {
		slog.Error("health check failed", "backend", h.backend, "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "ledger unavailable")
	}

	return jsonSuccess(c, fiber.Map{"ledger": h.backend})
}
