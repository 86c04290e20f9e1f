package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-directory/internal/persistence"
	"github.com/spec-kit/staff-directory/internal/service"
	"github.com/spec-kit/staff-directory/pkg/util/errorutil"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	rosters     service.RosterProvider
}

// NewHealthHandler returns a new handler instance. Postgres and Redis are
// only checked when configured.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, rosters service.RosterProvider) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, rosters: rosters}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if h.postgres.PoolHandle() != nil {
		if err := h.postgres.Ping(ctx); err != nil {
			depStatus["postgres"] = err.Error()
			ready = false
		} else {
			depStatus["postgres"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			depStatus["redis"] = err.Error()
			ready = false
		} else {
			depStatus["redis"] = "ok"
		}
	}

	depStatus["roster"] = h.rosterSize()

	if !ready {
		return errorutil.NewUnavailable("dependencies", depStatus)
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	})
}

func (h *HealthHandler) rosterSize() string {
	return fmt.Sprintf("%d records", h.rosters.Current().Len())
}
