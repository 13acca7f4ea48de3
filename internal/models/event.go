package models

import (
	"errors"
	"strings"
	"time"
)

// EventStatus represents the derived lifecycle state of an event
type EventStatus string

const (
	StatusOpen      EventStatus = "Open"
	StatusInactive  EventStatus = "Inactive"
	StatusSoldOut   EventStatus = "Sold Out"
	StatusCancelled EventStatus = "Cancelled"
)

// Event represents a bookable event in the system
type Event struct {
	ID          int       `json:"id" db:"id"`
	OwnerID     int       `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	Venue       string    `json:"venue" db:"venue"`
	Artist      string    `json:"artist" db:"artist"`
	Date        time.Time `json:"date" db:"date"` // calendar day, no time of day
	Capacity    int       `json:"capacity" db:"capacity"`
	TicketsSold int       `json:"tickets_sold" db:"tickets_sold"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	Cancelled   bool      `json:"cancelled" db:"cancelled"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	OwnerID     int       `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Venue       string    `json:"venue"`
	Artist      string    `json:"artist"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	PriceCents  int64     `json:"price_cents"`
}

// StatusOn resolves the event's lifecycle status as of the given day.
// The checks are ordered by priority and the first match wins: a cancelled
// event is Cancelled even when it is also past-dated and sold out. Callers
// supply "today" so display code and tests control the clock.
func (e *Event) StatusOn(today time.Time) EventStatus {
	if e.Cancelled {
		return StatusCancelled
	}
	if dateOnly(e.Date).Before(dateOnly(today)) {
		return StatusInactive
	}
	if e.Capacity > 0 && e.TicketsSold >= e.Capacity {
		return StatusSoldOut
	}
	return StatusOpen
}

// Remaining returns the number of tickets still sellable. Capacity 0 means
// no tickets are sellable at all.
func (e *Event) Remaining() int {
	if e.Capacity <= 0 {
		return 0
	}
	remaining := e.Capacity - e.TicketsSold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// PriceInCurrency returns the unit price in the main currency as a float.
// Display only; stored amounts stay in integer cents.
func (e *Event) PriceInCurrency() float64 {
	return float64(e.PriceCents) / 100.0
}

// dateOnly normalizes a timestamp to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate validates the event data
func (e *Event) Validate() error {
	if err := validateEventTitle(e.Title); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return errors.New("date is required")
	}
	if e.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	if e.TicketsSold < 0 {
		return errors.New("tickets sold cannot be negative")
	}
	if e.Capacity > 0 && e.TicketsSold > e.Capacity {
		return errors.New("tickets sold cannot exceed capacity")
	}
	if e.PriceCents < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if err := validateEventTitle(req.Title); err != nil {
		return err
	}
	if req.OwnerID <= 0 {
		return errors.New("owner is required")
	}
	if req.Date.IsZero() {
		return errors.New("date is required")
	}
	if req.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	if req.PriceCents < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

func validateEventTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}
	if len(title) > 120 {
		return errors.New("title must be less than 120 characters")
	}
	return nil
}
