// Package gcal wraps the Google Calendar API behind a small provider
// interface so the booking logic can be exercised against a fake.
package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Event is the subset of a provider event the service cares about.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status,omitempty"`
}

// ReminderOverride is a single non-default reminder on a created event.
type ReminderOverride struct {
	Method  string
	Minutes int64
}

// EventSpec describes an event to create. The service creates events but does
// not track them afterwards.
type EventSpec struct {
	Summary        string
	Description    string
	Start          time.Time
	End            time.Time
	Timezone       string
	AttendeeEmails []string
	Reminders      []ReminderOverride
}

// ProviderError wraps any failure coming back from the calendar provider,
// transport and auth failures included. Nothing is retried.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("calendar provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider is the calendar API surface used by the booking logic. Calls
// require a valid, non-expired token; the provider never refreshes it.
type Provider interface {
	// ListEvents returns the events intersecting [windowStart, windowEnd],
	// ordered by start time, capped at the provider-side result limit.
	ListEvents(ctx context.Context, tok *oauth2.Token, calendarID string, windowStart, windowEnd time.Time) ([]Event, error)

	// ListUpcoming returns events starting from the given instant, capped at
	// the provider-side result limit.
	ListUpcoming(ctx context.Context, tok *oauth2.Token, calendarID string, from time.Time) ([]Event, error)

	// InsertEvent creates a new event and returns the provider-assigned id.
	InsertEvent(ctx context.Context, tok *oauth2.Token, calendarID string, spec EventSpec) (string, error)
}
