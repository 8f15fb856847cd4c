package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(db *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Live handles GET /api/health.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
}

// Ready handles GET /api/health/ready, checking both backing stores.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := h.db.Ping(c.UserContext()); err != nil {
		checks["postgres"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := h.redis.Ping(c.UserContext()); err != nil {
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{"data": checks})
}
