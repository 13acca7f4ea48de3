package repositories

import (
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
)

// setupTestDB connects to the test database named by TEST_DATABASE_URL.
// Tests that need a live database skip when it is not configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Skipf("failed to connect to test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("failed to ping test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a throwaway user and returns its id
func createTestUser(t *testing.T, db *sql.DB) int {
	t.Helper()

	suffix := time.Now().Format("20060102150405.000000000")

	var id int
	err := db.QueryRow(
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		"Test User "+suffix, "test-"+suffix+"@example.com", "x",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		db.Exec(`DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

// createTestEvent inserts a throwaway future event and returns its id
func createTestEvent(t *testing.T, db *sql.DB, ownerID, capacity int) int {
	t.Helper()

	var id int
	err := db.QueryRow(
		`INSERT INTO events (owner_id, title, date, capacity, price_cents)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		ownerID, "Test Event", time.Now().AddDate(0, 0, 7), capacity, 2500,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}

	t.Cleanup(func() {
		db.Exec(`DELETE FROM events WHERE id = $1`, id)
	})
	return id
}
