package gcalendar

import (
	"context"
	"time"
)

// ICalendar creates events on a Google calendar.
type ICalendar interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
}

// CreateEventRequest is the input for creating a Google Calendar event.
// AllDay events use only the date part of StartTime and EndTime.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	Timezone    string
	Source      *EventSource
	Properties  map[string]string
}

// EventSource links the event back to the item it was created for.
type EventSource struct {
	Title string
	URL   string
}

// Event is the part of a created event callers use.
type Event struct {
	ID        string
	Summary   string
	HtmlLink  string
	StartTime time.Time
	EndTime   time.Time
}
