package services

import (
	"fmt"
	"time"

	"ticketbooth/internal/models"
)

// EventReader provides read access to events for the booking flow
type EventReader interface {
	GetByID(id int) (*models.Event, error)
}

// BookingLedger persists a booking: it must increment the event's
// tickets_sold counter and record the order atomically, re-checking
// capacity under its own transactional boundary, and return
// models.ErrInsufficientCapacity when the request no longer fits.
type BookingLedger interface {
	CompleteBooking(eventID, userID, quantity int) (*models.Order, error)
}

// BookingRequest represents a validated, authenticated booking attempt
type BookingRequest struct {
	EventID  int `json:"event_id"`
	Quantity int `json:"quantity"`
	UserID   int `json:"user_id"`
}

// OrderSnapshot is the caller-facing view of a freshly created order
type OrderSnapshot struct {
	Reference      string    `json:"reference"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	EventID        int       `json:"event_id"`
	UserID         int       `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingService owns the ticket inventory: it is the only component that
// creates orders or moves the tickets_sold counter forward.
type BookingService struct {
	events EventReader
	ledger BookingLedger
	locks  *eventLocks
	now    func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(events EventReader, ledger BookingLedger) *BookingService {
	return &BookingService{
		events: events,
		ledger: ledger,
		locks:  newEventLocks(),
		now:    time.Now,
	}
}

// AttemptBooking tries to purchase tickets for an event. It fails fast
// with one of the sentinel errors in models: ErrInvalidQuantity,
// ErrEventNotFound, ErrEventNotBookable (the event is cancelled, past, or
// sold out) or ErrInsufficientCapacity (the event is open but this
// quantity does not fit). On success the returned snapshot carries the
// unique order reference and the unit price frozen at booking time.
//
// The whole read-check-book sequence runs under a per-event lock, so two
// concurrent attempts whose combined quantity exceeds the remaining
// capacity can never both succeed.
func (s *BookingService) AttemptBooking(req *BookingRequest) (*OrderSnapshot, error) {
	if req.Quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}

	unlock := s.locks.acquire(req.EventID)
	defer unlock()

	event, err := s.events.GetByID(req.EventID)
	if err != nil {
		return nil, err
	}

	if event.StatusOn(s.now()) != models.StatusOpen {
		return nil, models.ErrEventNotBookable
	}

	// Independent of the status check: an open event can still lack room
	// for this particular quantity. Capacity 0 sells nothing.
	if event.Capacity <= 0 || event.TicketsSold+req.Quantity > event.Capacity {
		return nil, models.ErrInsufficientCapacity
	}

	order, err := s.ledger.CompleteBooking(req.EventID, req.UserID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("booking failed: %w", err)
	}

	return &OrderSnapshot{
		Reference:      order.Reference,
		UnitPriceCents: order.UnitPriceCents,
		Quantity:       order.Quantity,
		EventID:        order.EventID,
		UserID:         order.UserID,
		CreatedAt:      order.CreatedAt,
	}, nil
}

// ResolveStatus reports the event's current status for display. Read-only.
func (s *BookingService) ResolveStatus(event *models.Event) models.EventStatus {
	return event.StatusOn(s.now())
}
