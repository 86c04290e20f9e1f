package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/staff-directory/internal/api/dto"
	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/events"
	"github.com/spec-kit/staff-directory/internal/service"
	"github.com/spec-kit/staff-directory/pkg/util/errorutil"
)

// DirectoryOptions configures a DirectoryHandler.
type DirectoryOptions struct {
	PageTitle  string
	CookieName string
	SessionTTL time.Duration
}

// DirectoryHandler exposes the staff directory endpoints.
type DirectoryHandler struct {
	directory *service.DirectoryService
	opts      DirectoryOptions
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService, opts DirectoryOptions) *DirectoryHandler {
	if opts.CookieName == "" {
		opts.CookieName = "directory_session"
	}
	if opts.PageTitle == "" {
		opts.PageTitle = "Staff Directory"
	}
	return &DirectoryHandler{directory: directory, opts: opts}
}

// Page handles GET /directory.
func (h *DirectoryHandler) Page(c *fiber.Ctx) error {
	id := h.sessionID(c)
	res := h.directory.Render(c.UserContext(), id, controls(c))

	html, err := renderPage(pageData{
		Title:       h.opts.PageTitle,
		Query:       res.Evaluation.Query,
		Schools:     res.Roster.Schools(),
		Departments: res.Roster.Departments(),
		State:       res.State,
		Results:     res.Evaluation.Fragment,
		Message:     res.Evaluation.Message,
		DebounceMS:  h.directory.SearchDebounce().Milliseconds(),
	})
	if err != nil {
		return errorutil.NewInternalError(err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// Results handles GET /directory/results.
func (h *DirectoryHandler) Results(c *fiber.Ctx) error {
	return h.apply(c, events.New(events.EventSearchChanged, nil))
}

// Filters handles POST /directory/filters.
func (h *DirectoryHandler) Filters(c *fiber.Ctx) error {
	return h.apply(c, events.New(events.EventSchoolFilterChanged, nil))
}

// ToggleView handles POST /directory/view/:mode.
func (h *DirectoryHandler) ToggleView(c *fiber.Ctx) error {
	mode := c.Params("mode")
	view := domain.ParseViewMode(mode)
	if string(view) != mode {
		return errorutil.NewValidationError("unknown view", map[string]any{"view": mode})
	}
	return h.apply(c, events.New(events.EventViewToggled, events.ViewToggledPayload{View: view}))
}

// Sort handles POST /directory/sort/:column.
func (h *DirectoryHandler) Sort(c *fiber.Ctx) error {
	column, _ := domain.ParseColumn(c.Params("column"))
	return h.apply(c, events.New(events.EventSortRequested, events.SortRequestedPayload{Column: column}))
}

// Export handles GET /directory/export.csv.
func (h *DirectoryHandler) Export(c *fiber.Ctx) error {
	artifact, err := h.directory.Export(c.UserContext(), h.sessionID(c), controls(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+artifact.Name+`"`)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(artifact.Body)))
	return c.Send(artifact.Body)
}

func (h *DirectoryHandler) apply(c *fiber.Ctx, ev events.Event) error {
	ctrl := controls(c)
	res, err := h.directory.Apply(c.UserContext(), h.sessionID(c), ctrl, ev)
	if err != nil {
		return err
	}
	if wantsPage(c) {
		return c.Redirect(pageURL(ctrl), fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": dto.NewResultsResponse(res.Evaluation, res.State)})
}

// wantsPage reports whether the request came from a plain form submission,
// which is answered by redirecting back to the page.
func wantsPage(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

func pageURL(ctrl service.Controls) string {
	q := url.Values{}
	if ctrl.Search != "" {
		q.Set("search", ctrl.Search)
	}
	if ctrl.School != "" {
		q.Set("school", ctrl.School)
	}
	if ctrl.Department != "" {
		q.Set("department", ctrl.Department)
	}
	if len(q) == 0 {
		return "/directory"
	}
	return "/directory?" + q.Encode()
}

// sessionID returns the visitor's session id, issuing a fresh one when the
// cookie is missing or malformed, and refreshes the cookie.
func (h *DirectoryHandler) sessionID(c *fiber.Ctx) string {
	id := c.Cookies(h.opts.CookieName)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	cookie := &fiber.Cookie{
		Name:     h.opts.CookieName,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if h.opts.SessionTTL > 0 {
		cookie.Expires = time.Now().Add(h.opts.SessionTTL)
	}
	c.Cookie(cookie)
	return id
}

// controls reads the search and filter values from the query string or form body.
func controls(c *fiber.Ctx) service.Controls {
	return service.Controls{
		Search:     formOrQuery(c, "search"),
		School:     formOrQuery(c, "school"),
		Department: formOrQuery(c, "department"),
	}
}

func formOrQuery(c *fiber.Ctx, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.FormValue(key)
}
