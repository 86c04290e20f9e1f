package events

import (
	"time"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// EventType enumerates the directory triggers a host page can raise.
type EventType string

const (
	EventSearchChanged           EventType = "search_changed"
	EventSchoolFilterChanged     EventType = "school_filter_changed"
	EventDepartmentFilterChanged EventType = "department_filter_changed"
	EventViewToggled             EventType = "view_toggled"
	EventSortRequested           EventType = "sort_requested"
	EventExportRequested         EventType = "export_requested"
)

// Event represents one trigger raised against a directory engine.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ViewToggledPayload payload.
type ViewToggledPayload struct {
	View domain.ViewMode `json:"view"`
}

// SortRequestedPayload payload.
type SortRequestedPayload struct {
	Column domain.Column `json:"column"`
}

// New stamps an event of the given type.
func New(eventType EventType, payload interface{}) Event {
	return Event{Type: eventType, Timestamp: time.Now().UTC(), Payload: payload}
}
