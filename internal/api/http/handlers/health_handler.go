package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Reports dependency state without failing the
// probe: the server can serve from the in-memory store without either.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	deps := fiber.Map{}
	if h.pg != nil && h.pg.PoolHandle() != nil {
		if err := h.pg.PoolHandle().Ping(c.Context()); err != nil {
			deps["postgres"] = "down"
		} else {
			deps["postgres"] = "up"
		}
	} else {
		deps["postgres"] = "memory"
	}
	if err := h.redis.Ping(c.Context()); err != nil {
		deps["redis"] = "down"
	} else {
		deps["redis"] = "up"
	}
	return c.JSON(fiber.Map{"status": "ok", "dependencies": deps})
}
