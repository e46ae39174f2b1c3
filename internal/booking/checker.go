package booking

import (
	"context"
	"time"

	"github.com/brizzai/calbook/internal/config"
	"github.com/brizzai/calbook/internal/gcal"
	"golang.org/x/oauth2"
)

// Checker answers whether a candidate slot collides with existing events.
type Checker struct {
	provider   gcal.Provider
	calendarID string
}

// NewChecker creates a Checker bound to the configured calendar.
func NewChecker(cfg *config.Config, provider gcal.Provider) *Checker {
	return &Checker{
		provider:   provider,
		calendarID: cfg.Calendar.CalendarID,
	}
}

// Booked reports whether any event intersects the 30-minute slot starting at
// start. An event only has to intersect the window to count as a conflict.
func (c *Checker) Booked(ctx context.Context, tok *oauth2.Token, start time.Time) (bool, error) {
	windowStart, windowEnd := Slot(start)
	events, err := c.provider.ListEvents(ctx, tok, c.calendarID, windowStart, windowEnd)
	if err != nil {
		return false, err
	}
	return len(events) > 0, nil
}

// SlotBooked parses the raw requested start and checks it against the
// calendar.
func (c *Checker) SlotBooked(ctx context.Context, tok *oauth2.Token, raw string) (bool, error) {
	start, err := ParseStartTime(raw)
	if err != nil {
		return false, err
	}
	return c.Booked(ctx, tok, start)
}
