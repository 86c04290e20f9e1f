package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/staff-directory/internal/api/http/handlers"
	"github.com/spec-kit/staff-directory/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Directory   *handlers.DirectoryHandler
	Widgets     *handlers.WidgetsHandler
	Metrics     *observability.Metrics
	MetricsPath string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/directory", fiber.StatusFound)
	})

	dir := app.Group("/directory")
	dir.Get("", cfg.Directory.Page)
	dir.Get("/results", cfg.Directory.Results)
	dir.Post("/filters", cfg.Directory.Filters)
	dir.Post("/view/:mode", cfg.Directory.ToggleView)
	dir.Post("/sort/:column", cfg.Directory.Sort)
	dir.Get("/export.csv", cfg.Directory.Export)

	app.Get("/share/:platform", cfg.Widgets.Share)
	app.Post("/calendar/event.ics", cfg.Widgets.CalendarEvent)

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
}
