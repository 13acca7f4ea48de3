package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"ticketbooth/internal/utils"
)

type seedEvent struct {
	title      string
	category   string
	venue      string
	artist     string
	daysAhead  int
	capacity   int
	priceCents int64
}

var demoEvents = []seedEvent{
	{"Underground Rap Night", "Hip-Hop", "The Basement", "MC Flow", 14, 120, 2999},
	{"Vibin at the Loft", "R&B", "The Loft", "Smooth Collective", 21, 80, 2450},
	{"Funky Town", "Funk", "City Hall Arena", "The Groove Machine", 30, 200, 3500},
	{"Rhythm & Blues", "R&B", "Blue Note Club", "Ella Stone", 45, 150, 2700},
	{"Rap Festival", "Hip-Hop", "Riverside Grounds", "Various Artists", 60, 500, 5990},
}

const seedLockKey = 874011

// Seed inserts the demo account and demo events once. A transaction-scoped
// advisory lock keeps concurrent instances from seeding twice, and an
// existing demo account means seeding already happened.
func Seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return fmt.Errorf("failed to acquire seed lock: %w", err)
	}

	var exists bool
	err = tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, "demo@example.com",
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for demo account: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := utils.HashPassword("demopassword")
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	var ownerID int
	err = tx.QueryRow(
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		"Demo User", "demo@example.com", passwordHash,
	).Scan(&ownerID)
	if err != nil {
		return fmt.Errorf("failed to insert demo account: %w", err)
	}

	for _, ev := range demoEvents {
		date := time.Now().AddDate(0, 0, ev.daysAhead)
		_, err := tx.Exec(
			`INSERT INTO events (owner_id, title, description, category, venue, artist, date, capacity, price_cents)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			ownerID, ev.title, "Come join us for "+ev.title+"!",
			ev.category, ev.venue, ev.artist, date, ev.capacity, ev.priceCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert demo event %q: %w", ev.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	log.Printf("seeded demo account and %d demo events", len(demoEvents))
	return nil
}
