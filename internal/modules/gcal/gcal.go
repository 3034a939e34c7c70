// Package gcal automates Google Calendar events on the user's primary
// calendar.
package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"aria/internal/modules"
)

const maxEvents = 50

type Module struct {
	svc *calendar.Service
	loc *time.Location
}

// New builds the module on top of an authorized HTTP client from googleauth.
func New(ctx context.Context, loc *time.Location, opts ...option.ClientOption) (*Module, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Module{svc: svc, loc: loc}, nil
}

func (m *Module) Name() string { return "calendar" }

func (m *Module) Description() string {
	return "handle Google Calendar events (list, create, delete)"
}

func (m *Module) Actions() []modules.Action {
	return []modules.Action{
		{
			Name:        "list_events",
			Description: "Lists calendar events for a time period. The time_period can be a single date (YYYY-MM-DD), a specific datetime (YYYY-MM-DDTHH:MM:SS), or a range (YYYY-MM-DD/YYYY-MM-DD).",
			Example:     `{"action":"list_events","time_period":"2026-09-01/2026-09-30"}`,
			Handler:     m.listEvents,
		},
		{
			Name:        "create_event",
			Description: "Creates a calendar event with a summary, start time, and optional end time and description. Times must be ISO 8601 (YYYY-MM-DDTHH:MM:SS for specific times, YYYY-MM-DD for all-day).",
			Example:     `{"action":"create_event","summary":"Team Sync","start_time":"2026-09-01T10:00:00","end_time":"2026-09-01T11:00:00","description":"Discuss Q4 goals"}`,
			Handler:     m.createEvent,
		},
		{
			Name:        "delete_event",
			Description: "Deletes a calendar event by its summary and optional time period. The summary should closely match an existing event.",
			Example:     `{"action":"delete_event","summary":"Team Sync","time_period":"2026-09-01"}`,
			Handler:     m.deleteEvent,
		},
	}
}

func (m *Module) eventsIn(ctx context.Context, start, end time.Time) ([]*calendar.Event, error) {
	res, err := m.svc.Events.List("primary").
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxEvents).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return res.Items, nil
}

func (m *Module) listEvents(ctx context.Context, args modules.Args) (string, error) {
	start, end, err := parsePeriod(args.StringOr("time_period", ""), m.loc)
	if err != nil {
		return "", err
	}

	items, err := m.eventsIn(ctx, start, end)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return fmt.Sprintf("No events found between %s and %s.",
			start.Format(dayLayout), end.AddDate(0, 0, -1).Format(dayLayout)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d event(s):\n", len(items))
	for _, ev := range items {
		fmt.Fprintf(&b, "- %s (%s)\n", ev.Summary, eventWhen(ev, m.loc))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (m *Module) createEvent(ctx context.Context, args modules.Args) (string, error) {
	summary, err := args.String("summary")
	if err != nil {
		return "", err
	}
	startRaw, err := args.String("start_time")
	if err != nil {
		return "", err
	}

	start, allDay, err := parseEventTime(startRaw, m.loc)
	if err != nil {
		return "", err
	}

	ev := &calendar.Event{
		Summary:     summary,
		Description: args.StringOr("description", ""),
	}

	if allDay {
		end := start.AddDate(0, 0, 1)
		if raw := args.StringOr("end_time", ""); raw != "" {
			if t, dateOnly, err := parseEventTime(raw, m.loc); err == nil && dateOnly {
				end = t.AddDate(0, 0, 1)
			}
		}
		ev.Start = &calendar.EventDateTime{Date: start.Format(dayLayout)}
		ev.End = &calendar.EventDateTime{Date: end.Format(dayLayout)}
	} else {
		end := start.Add(time.Hour)
		if raw := args.StringOr("end_time", ""); raw != "" {
			t, _, err := parseEventTime(raw, m.loc)
			if err != nil {
				return "", err
			}
			end = t
		}
		ev.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: m.loc.String()}
		ev.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: m.loc.String()}
	}

	created, err := m.svc.Events.Insert("primary", ev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return fmt.Sprintf("Event %q created successfully (%s).", created.Summary, eventWhen(created, m.loc)), nil
}

func (m *Module) deleteEvent(ctx context.Context, args modules.Args) (string, error) {
	summary, err := args.String("summary")
	if err != nil {
		return "", err
	}

	start, end, err := parsePeriod(args.StringOr("time_period", ""), m.loc)
	if err != nil {
		return "", err
	}

	items, err := m.eventsIn(ctx, start, end)
	if err != nil {
		return "", err
	}

	var deleted int
	for _, ev := range items {
		if !strings.EqualFold(strings.TrimSpace(ev.Summary), strings.TrimSpace(summary)) {
			continue
		}
		if err := m.svc.Events.Delete("primary", ev.Id).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("delete event %s: %w", ev.Id, err)
		}
		deleted++
	}
	if deleted == 0 {
		return fmt.Sprintf("No event named %q found in that period.", summary), nil
	}
	return fmt.Sprintf("Deleted %d event(s) named %q.", deleted, summary), nil
}

func eventWhen(ev *calendar.Event, loc *time.Location) string {
	if ev.Start == nil {
		return "unknown time"
	}
	if ev.Start.Date != "" {
		return ev.Start.Date + ", all day"
	}
	t, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return ev.Start.DateTime
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
