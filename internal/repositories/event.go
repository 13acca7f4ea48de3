package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ticketbooth/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventSearchFilters represents filters for event listing
type EventSearchFilters struct {
	Category string // exact category match
	Query    string // case-insensitive substring match on title or artist
	OwnerID  int    // filter by owner
	Limit    int
	Offset   int
}

const eventColumns = `id, owner_id, title, description, image_url, category, venue, artist, date, capacity, tickets_sold, price_cents, cancelled, created_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.OwnerID,
		&event.Title,
		&event.Description,
		&event.ImageURL,
		&event.Category,
		&event.Venue,
		&event.Artist,
		&event.Date,
		&event.Capacity,
		&event.TicketsSold,
		&event.PriceCents,
		&event.Cancelled,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *EventRepository) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO events (owner_id, title, description, image_url, category, venue, artist, date, capacity, tickets_sold, price_cents, cancelled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, FALSE, $11)
		RETURNING %s`, eventColumns)

	event, err := scanEvent(r.db.QueryRow(
		query,
		req.OwnerID,
		req.Title,
		req.Description,
		req.ImageURL,
		req.Category,
		req.Venue,
		req.Artist,
		req.Date,
		req.Capacity,
		req.PriceCents,
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// Search retrieves events matching the given filters
func (r *EventRepository) Search(filters EventSearchFilters) ([]*models.Event, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filters.Category)
		argIndex++
	}

	if filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR artist ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}

	if filters.OwnerID > 0 {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIndex))
		args = append(args, filters.OwnerID)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		ORDER BY date ASC, id ASC
		LIMIT $%d OFFSET $%d`,
		eventColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// Categories returns the distinct event categories in use
func (r *EventRepository) Categories() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT category FROM events WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// SetCancelled marks an event as cancelled
func (r *EventRepository) SetCancelled(id int) error {
	result, err := r.db.Exec(`UPDATE events SET cancelled = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to cancel event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// Delete removes an event together with its orders and comments. The
// foreign keys carry ON DELETE CASCADE, but the dependents are removed
// explicitly in one transaction so the cleanup does not rely on schema
// details alone.
func (r *EventRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM comments WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event comments: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM orders WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event orders: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event deletion: %w", err)
	}

	return nil
}
