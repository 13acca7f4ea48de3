package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"ticketbooth/internal/models"
)

const (
	// Bounded retries for the order reference unique constraint and for
	// transient serialization failures on the event row.
	maxReferenceAttempts = 5
	maxTxAttempts        = 3
)

// OrderRepository handles order data operations, including the booking
// transaction that keeps event inventory consistent.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, event_id, reference, quantity, unit_price_cents, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.EventID,
		&order.Reference,
		&order.Quantity,
		&order.UnitPriceCents,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteBooking atomically increments the event's tickets_sold counter
// and inserts the order recording the sale. The event row is locked with
// SELECT ... FOR UPDATE so the capacity check and the increment are
// serialized against all other bookings on the same event; both writes
// commit together or not at all. The unit price is snapshotted from the
// locked row, so later price changes never touch existing orders.
//
// Transient transaction conflicts are retried up to maxTxAttempts before
// the error is surfaced.
func (r *OrderRepository) CompleteBooking(eventID, userID, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}

	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		order, err := r.completeBookingOnce(eventID, userID, quantity)
		if err == nil {
			return order, nil
		}
		if !isSerializationFailure(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("booking transaction did not settle: %w", lastErr)
}

func (r *OrderRepository) completeBookingOnce(eventID, userID, quantity int) (*models.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity, sold int
	var priceCents int64
	err = tx.QueryRow(`
		SELECT capacity, tickets_sold, price_cents
		FROM events
		WHERE id = $1
		FOR UPDATE`, eventID).Scan(&capacity, &sold, &priceCents)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to lock event row: %w", err)
	}

	// Authoritative capacity check under the row lock. Capacity 0 sells
	// nothing.
	if capacity <= 0 || sold+quantity > capacity {
		return nil, models.ErrInsufficientCapacity
	}

	if _, err = tx.Exec(`
		UPDATE events
		SET tickets_sold = tickets_sold + $2
		WHERE id = $1`, eventID, quantity); err != nil {
		return nil, fmt.Errorf("failed to increment tickets sold: %w", err)
	}

	order, err := insertOrderWithReference(tx, eventID, userID, quantity, priceCents)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return order, nil
}

// insertOrderWithReference inserts the order, regenerating the reference
// on the rare unique-constraint collision, bounded at maxReferenceAttempts.
func insertOrderWithReference(tx *sql.Tx, eventID, userID, quantity int, priceCents int64) (*models.Order, error) {
	query := fmt.Sprintf(`
		INSERT INTO orders (user_id, event_id, reference, quantity, unit_price_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reference) DO NOTHING
		RETURNING %s`, orderColumns)

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := models.GenerateOrderReference(eventID)

		order, err := scanOrder(tx.QueryRow(query, userID, eventID, reference, quantity, priceCents, time.Now()))
		if err == nil {
			return order, nil
		}
		if err != sql.ErrNoRows {
			// sql.ErrNoRows means the ON CONFLICT path swallowed the
			// insert; anything else is a real failure.
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
	}

	return nil, models.ErrReferenceExhausted
}

// isSerializationFailure reports whether an error is a transient Postgres
// conflict worth retrying (serialization_failure or deadlock_detected).
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetByReference retrieves an order by its human-facing reference
func (r *OrderRepository) GetByReference(reference string) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE reference = $1`, orderColumns)

	order, err := scanOrder(r.db.QueryRow(query, reference))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by reference: %w", err)
	}

	return order, nil
}

// GetByUser retrieves a user's orders, most recent first
func (r *OrderRepository) GetByUser(userID int) ([]*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, orderColumns)

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by user: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// CountByEvent returns the number of orders recorded against an event
func (r *OrderRepository) CountByEvent(eventID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
