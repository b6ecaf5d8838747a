// Command main runs the database seeder for Tone.
package main

import (
	"flag"
	"log"

	"tone/internal/config"
	"tone/internal/database"
	"tone/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of demo users to create")
	numLogs := flag.Int("logs", 150, "Number of demo logs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d logs, clean=%v\n", *numUsers, *numLogs, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumLogs:     *numLogs,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
