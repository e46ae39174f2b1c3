// Package booking holds the appointment-booking protocol: request
// validation, credential handling, availability check and event creation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brizzai/calbook/internal/config"
	"github.com/brizzai/calbook/internal/gcal"
	"github.com/brizzai/calbook/internal/logger"
	"github.com/brizzai/calbook/internal/token"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Request is one incoming booking request. Field names follow the public
// JSON contract.
type Request struct {
	DateTime      string `json:"Date_time"`
	Name          string `json:"Name"`
	Email         string `json:"Email"`
	ContactNumber string `json:"Contact_Number"`
}

func (r *Request) validate() error {
	var missing []string
	if r.DateTime == "" {
		missing = append(missing, "Date_time")
	}
	if r.Name == "" {
		missing = append(missing, "Name")
	}
	if r.Email == "" {
		missing = append(missing, "Email")
	}
	if r.ContactNumber == "" {
		missing = append(missing, "Contact_Number")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Confirmation is the success payload for a created appointment.
type Confirmation struct {
	Status        string `json:"Status"`
	Date          string `json:"Date"`
	Name          string `json:"Name"`
	Email         string `json:"Email"`
	ContactNumber string `json:"Contact_Number"`
}

// Booker coordinates the booking protocol: validate, ensure credentials,
// re-check availability, create the event. There is no mutual exclusion
// between concurrent bookings for the same slot; the check and the insert are
// not atomic as a pair and the provider is trusted to hold whatever both
// writes produce.
type Booker struct {
	store    token.Store
	provider gcal.Provider
	checker  *Checker

	calendarID string
	timezone   string
}

// NewBooker creates a Booker bound to the configured calendar.
func NewBooker(cfg *config.Config, store token.Store, provider gcal.Provider, checker *Checker) *Booker {
	return &Booker{
		store:      store,
		provider:   provider,
		checker:    checker,
		calendarID: cfg.Calendar.CalendarID,
		timezone:   cfg.Calendar.Timezone,
	}
}

// credentials loads and, when needed, refreshes the stored record. It is the
// single place credentials are ensured, before any provider call is made.
func (b *Booker) credentials(ctx context.Context) (*oauth2.Token, error) {
	creds, err := b.store.Load(ctx)
	if err != nil {
		if errors.Is(err, token.ErrNoCredentials) {
			return nil, ErrAuthorizationRequired
		}
		return nil, err
	}

	creds, err = b.store.RefreshIfNeeded(ctx, creds)
	if err != nil {
		return nil, err
	}
	return creds.Token(), nil
}

// Book runs the full booking protocol for one request.
func (b *Booker) Book(ctx context.Context, req *Request) (*Confirmation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	start, err := ParseStartTime(req.DateTime)
	if err != nil {
		return nil, err
	}

	tok, err := b.credentials(ctx)
	if err != nil {
		return nil, err
	}

	booked, err := b.checker.Booked(ctx, tok, start)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, ErrAlreadyBooked
	}

	slotStart, slotEnd := Slot(start)
	spec := gcal.EventSpec{
		Summary:        req.Name,
		Description:    fmt.Sprintf("Contact Number: %s", req.ContactNumber),
		Start:          slotStart,
		End:            slotEnd,
		Timezone:       b.timezone,
		AttendeeEmails: []string{req.Email},
		Reminders: []gcal.ReminderOverride{
			{Method: "email", Minutes: 24 * 60},
			{Method: "popup", Minutes: 10},
		},
	}

	eventID, err := b.provider.InsertEvent(ctx, tok, b.calendarID, spec)
	if err != nil {
		return nil, err
	}

	logger.Info("appointment created",
		zap.String("event_id", eventID),
		zap.Time("start", slotStart),
	)

	return &Confirmation{
		Status:        "SUCCESS",
		Date:          datePortion(req.DateTime),
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
	}, nil
}

// Check reports whether the slot at the raw requested start is booked.
func (b *Booker) Check(ctx context.Context, raw string) (bool, error) {
	tok, err := b.credentials(ctx)
	if err != nil {
		return false, err
	}
	return b.checker.SlotBooked(ctx, tok, raw)
}

// UpcomingEvents lists events from now on, up to the provider-side cap.
func (b *Booker) UpcomingEvents(ctx context.Context) ([]gcal.Event, error) {
	tok, err := b.credentials(ctx)
	if err != nil {
		return nil, err
	}
	return b.provider.ListUpcoming(ctx, tok, b.calendarID, time.Now())
}
