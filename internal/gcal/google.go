package gcal

import (
	"context"
	"time"

	"github.com/brizzai/calbook/internal/config"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Google implements Provider against the Google Calendar v3 API. A service
// client is built per call from a static token source, so a refreshed token
// is always picked up and the adapter itself never refreshes anything.
type Google struct {
	maxResults int64
}

// NewGoogle creates the Google Calendar provider.
func NewGoogle(cfg *config.Config) *Google {
	return &Google{
		maxResults: cfg.Calendar.MaxResults,
	}
}

func (g *Google) service(ctx context.Context, tok *oauth2.Token) (*calendar.Service, error) {
	return calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(tok)))
}

func (g *Google) ListEvents(ctx context.Context, tok *oauth2.Token, calendarID string, windowStart, windowEnd time.Time) ([]Event, error) {
	service, err := g.service(ctx, tok)
	if err != nil {
		return nil, &ProviderError{Op: "events.list", Err: err}
	}

	result, err := service.Events.List(calendarID).
		TimeMin(windowStart.Format(time.RFC3339)).
		TimeMax(windowEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(g.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ProviderError{Op: "events.list", Err: err}
	}

	return fromGoogleEvents(result.Items), nil
}

func (g *Google) ListUpcoming(ctx context.Context, tok *oauth2.Token, calendarID string, from time.Time) ([]Event, error) {
	service, err := g.service(ctx, tok)
	if err != nil {
		return nil, &ProviderError{Op: "events.list", Err: err}
	}

	result, err := service.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(g.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ProviderError{Op: "events.list", Err: err}
	}

	return fromGoogleEvents(result.Items), nil
}

func (g *Google) InsertEvent(ctx context.Context, tok *oauth2.Token, calendarID string, spec EventSpec) (string, error) {
	service, err := g.service(ctx, tok)
	if err != nil {
		return "", &ProviderError{Op: "events.insert", Err: err}
	}

	created, err := service.Events.Insert(calendarID, toGoogleEvent(spec)).Context(ctx).Do()
	if err != nil {
		return "", &ProviderError{Op: "events.insert", Err: err}
	}
	return created.Id, nil
}

func toGoogleEvent(spec EventSpec) *calendar.Event {
	event := &calendar.Event{
		Summary:     spec.Summary,
		Description: spec.Description,
		Start: &calendar.EventDateTime{
			DateTime: spec.Start.Format(time.RFC3339),
			TimeZone: spec.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: spec.End.Format(time.RFC3339),
			TimeZone: spec.Timezone,
		},
	}

	for _, email := range spec.AttendeeEmails {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	if len(spec.Reminders) > 0 {
		overrides := make([]*calendar.EventReminder, 0, len(spec.Reminders))
		for _, r := range spec.Reminders {
			overrides = append(overrides, &calendar.EventReminder{
				Method:  r.Method,
				Minutes: r.Minutes,
			})
		}
		event.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		}
	}

	return event
}

func fromGoogleEvents(items []*calendar.Event) []Event {
	var result []Event
	for _, item := range items {
		result = append(result, fromGoogleEvent(item))
	}
	return result
}

func fromGoogleEvent(item *calendar.Event) Event {
	event := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Status:      item.Status,
	}
	if item.Start != nil {
		event.Start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
	}
	if item.End != nil {
		event.End, _ = time.Parse(time.RFC3339, item.End.DateTime)
	}
	return event
}
