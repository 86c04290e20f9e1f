package dto

import (
	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/widgets"
)

// ResultsResponse is one rendered evaluation of the directory.
type ResultsResponse struct {
	View    string       `json:"view"`
	HTML    string       `json:"html"`
	Message string       `json:"message"`
	Shown   int          `json:"shown"`
	Total   int          `json:"total"`
	Sort    SortResponse `json:"sort"`
}

// SortResponse reports the session's sort state.
type SortResponse struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
	Applied   bool   `json:"applied"`
}

// NewResultsResponse builds the response for an evaluation and the state it left behind.
func NewResultsResponse(ev directory.Evaluation, state directory.State) ResultsResponse {
	return ResultsResponse{
		View:    string(ev.View),
		HTML:    ev.Fragment,
		Message: ev.Message,
		Shown:   ev.Shown,
		Total:   ev.Total,
		Sort: SortResponse{
			Column:    string(state.Sort.Column),
			Direction: string(state.Sort.Direction),
			Applied:   state.SortApplied,
		},
	}
}

// CalendarEventRequest payload for POST /calendar/event.ics.
type CalendarEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ToEvent converts the request into a calendar event.
func (r CalendarEventRequest) ToEvent() widgets.CalendarEvent {
	return widgets.CalendarEvent{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}
