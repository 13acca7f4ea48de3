package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order represents an immutable record of a successful ticket purchase.
// The unit price is a snapshot of the event's price at booking time and is
// never recomputed from the event afterwards.
type Order struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	EventID        int       `json:"event_id" db:"event_id"`
	Reference      string    `json:"reference" db:"reference"`
	Quantity       int       `json:"quantity" db:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents" db:"unit_price_cents"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Order reference format: EV<eventID>-<8 uppercase hex chars>
var orderReferenceRegex = regexp.MustCompile(`^EV\d+-[0-9A-F]{8}$`)

// GenerateOrderReference produces a human-facing order reference for the
// given event. The 8-character token comes from a random UUID, so
// collisions are rare in practice; the storage layer's unique constraint
// is the backstop.
func GenerateOrderReference(eventID int) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("EV%d-%s", eventID, token)
}

// ValidOrderReference reports whether a reference matches the expected shape.
func ValidOrderReference(reference string) bool {
	return orderReferenceRegex.MatchString(reference)
}

// Validate validates the order data
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return errors.New("user is required")
	}
	if o.EventID <= 0 {
		return errors.New("event is required")
	}
	if o.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	if o.UnitPriceCents < 0 {
		return errors.New("unit price cannot be negative")
	}
	if !ValidOrderReference(o.Reference) {
		return errors.New("order reference format is invalid")
	}
	return nil
}

// TotalCents returns the order total in cents.
func (o *Order) TotalCents() int64 {
	return o.UnitPriceCents * int64(o.Quantity)
}

// UnitPriceInCurrency returns the snapshot unit price as a float for display.
func (o *Order) UnitPriceInCurrency() float64 {
	return float64(o.UnitPriceCents) / 100.0
}
