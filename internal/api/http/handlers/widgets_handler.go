package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staff-directory/internal/api/dto"
	"github.com/spec-kit/staff-directory/internal/widgets"
	"github.com/spec-kit/staff-directory/pkg/util/errorutil"
)

// WidgetsHandler serves share links and calendar downloads.
type WidgetsHandler struct{}

// NewWidgetsHandler constructs handler.
func NewWidgetsHandler() *WidgetsHandler {
	return &WidgetsHandler{}
}

// Share handles GET /share/:platform.
func (h *WidgetsHandler) Share(c *fiber.Ctx) error {
	pageURL := c.Query("url")
	if pageURL == "" {
		pageURL = c.BaseURL() + "/directory"
	}
	target, err := widgets.ShareURL(c.Params("platform"), pageURL, c.Query("title"))
	if errors.Is(err, widgets.ErrUnknownPlatform) {
		return errorutil.NewNotFound("share platform", map[string]any{"platform": c.Params("platform")})
	}
	if err != nil {
		return err
	}
	return c.Redirect(target, fiber.StatusFound)
}

// CalendarEvent handles POST /calendar/event.ics.
func (h *WidgetsHandler) CalendarEvent(c *fiber.Ctx) error {
	var req dto.CalendarEventRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	ics, err := widgets.CalendarICS(req.ToEvent())
	if err != nil {
		return errorutil.NewValidationError(err.Error(), nil)
	}
	c.Set(fiber.HeaderContentType, widgets.CalendarContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+widgets.CalendarFileName+`"`)
	return c.SendString(ics)
}
