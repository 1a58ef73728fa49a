package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"project-assistant/internal/model"
	"project-assistant/pkg/gcalendar"
	"project-assistant/pkg/log"
)

const (
	logPrefixCalendar      = "internal.item.calendarStore.CreateItem"
	defaultCalendarTimeout = 10 * time.Second

	eventPropItemID    = "item_id"
	eventPropProjectID = "project_id"
)

// calendarStore adds an all-day calendar event for every dated task it
// creates. Calendar failures never fail the creation.
type calendarStore struct {
	Store
	cal gcalendar.ICalendar
	cfg CalendarConfig
	l   log.Logger
}

// WithCalendar wraps store with the calendar sink. A nil calendar
// returns store unchanged.
func WithCalendar(store Store, cal gcalendar.ICalendar, cfg CalendarConfig, l log.Logger) Store {
	if cal == nil {
		return store
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCalendarTimeout
	}
	return &calendarStore{Store: store, cal: cal, cfg: cfg, l: l}
}

func (s *calendarStore) CreateItem(ctx context.Context, opt CreateOptions) (model.Item, error) {
	it, err := s.Store.CreateItem(ctx, opt)
	if err != nil || it.Type != model.ItemTask || it.DueDate == nil {
		return it, err
	}

	calCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req := gcalendar.CreateEventRequest{
		CalendarID:  s.cfg.CalendarID,
		Summary:     it.Title,
		Description: eventDescription(it),
		StartTime:   *it.DueDate,
		EndTime:     it.DueDate.AddDate(0, 0, 1),
		AllDay:      true,
		Timezone:    s.cfg.Timezone,
		Properties:  map[string]string{eventPropItemID: it.ID, eventPropProjectID: it.ProjectID},
	}
	if it.URL != "" {
		req.Source = &gcalendar.EventSource{Title: it.Title, URL: it.URL}
	}

	event, err := s.cal.CreateEvent(calCtx, req)
	if err != nil {
		s.l.Warnf(ctx, "%s: calendar event for %q skipped: %v", logPrefixCalendar, it.Title, err)
		return it, nil
	}

	link := event.HtmlLink
	it.CalendarURL = link
	if updated, err := s.Store.UpdateItem(ctx, it.ID, UpdateOptions{CalendarURL: &link}); err != nil {
		s.l.Warnf(ctx, "%s: could not attach calendar link to %s: %v", logPrefixCalendar, it.ID, err)
	} else {
		it = updated
	}
	return it, nil
}

func eventDescription(it model.Item) string {
	var sb strings.Builder
	sb.WriteString(it.Description)
	if it.URL != "" {
		fmt.Fprintf(&sb, "\n\n%s", it.URL)
	}
	return strings.TrimSpace(sb.String())
}
