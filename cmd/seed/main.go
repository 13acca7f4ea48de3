package main

import (
	"log"

	"ticketbooth/internal/config"
	"ticketbooth/internal/database"
)

// Seeds the demo account and demo events without starting the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}

	log.Println("seeding complete")
}
