package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tone/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumLogs     int
	ShouldClean bool
}

var memoTemplates = []string{
	"could not put it down",
	"finished in one sitting",
	"everyone kept telling me about this and they were right",
	"slow start, great ending",
	"not for me",
	"already planning a rewatch",
	"the soundtrack alone is worth it",
	"needed a week to recover from that ending",
	"picked this up on a whim",
	"",
	"",
}

// Seed populates the database with demo users, profiles, and logs.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d logs...", opts.NumUsers, opts.NumLogs)

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Items(db); err != nil {
		return fmt.Errorf("failed to seed item catalog: %w", err)
	}

	var items []models.Item
	if err := db.Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	logs, err := createLogs(db, r, users, items, opts.NumLogs)
	if err != nil {
		return fmt.Errorf("failed to create logs: %w", err)
	}
	log.Printf("✓ %d demo logs created", logs)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		if len(username) > 30 {
			username = username[:30]
		}

		user := models.User{
			Email: fmt.Sprintf("%s@example.com", username),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.Profile{
			ID:          user.ID,
			Username:    username,
			DisplayName: gofakeit.Name(),
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}

		users = append(users, user)
	}
	return users, nil
}

func createLogs(db *gorm.DB, r *rand.Rand, users []models.User, items []models.Item, count int) (int, error) {
	if len(users) == 0 || len(items) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		item := items[r.Intn(len(items))]

		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)

		entry := models.Log{
			UserID:    user.ID,
			ItemID:    item.ID,
			Stamp:     models.ValidStamps[r.Intn(len(models.ValidStamps))],
			Memo:      memoTemplates[r.Intn(len(memoTemplates))],
			IsPublic:  r.Intn(10) < 8,
			CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
		}
		if err := db.Create(&entry).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func clearData(db *gorm.DB) error {
	// Delete in FK dependency order.
	for _, table := range []string{"logs", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
