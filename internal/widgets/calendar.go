package widgets

import (
	"errors"
	"strings"
)

// Download name and media type of a generated calendar file.
const (
	CalendarFileName    = "event.ics"
	CalendarContentType = "text/calendar"
)

// ErrMissingStart is returned for an event without a start date.
var ErrMissingStart = errors.New("event start date is required")

// CalendarEvent is a single calendar entry. Dates are iCalendar DATE or
// DATE-TIME values such as 20250905T090000.
type CalendarEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// CalendarICS renders event as a one-event VCALENDAR document.
func CalendarICS(event CalendarEvent) (string, error) {
	start := strings.TrimSpace(event.StartDate)
	if start == "" {
		return "", ErrMissingStart
	}
	end := strings.TrimSpace(event.EndDate)
	if end == "" {
		end = start
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"DTSTART:" + start,
		"DTEND:" + end,
		"SUMMARY:" + textEscaper.Replace(event.Title),
		"DESCRIPTION:" + textEscaper.Replace(event.Description),
		"LOCATION:" + textEscaper.Replace(event.Location),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n") + "\r\n", nil
}
