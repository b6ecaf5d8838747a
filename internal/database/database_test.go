package database

import (
	"testing"

	"tone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAllModels_MigratesCleanly(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(AllModels()...))

	for _, table := range []string{"users", "profiles", "items", "logs"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestAllModels_IncludesLog(t *testing.T) {
	found := false
	for _, model := range AllModels() {
		if _, ok := model.(*models.Log); ok {
			found = true
			break
		}
	}
	require.True(t, found, "AllModels should include Log")
}

func TestRegisteredMigrations(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)
	assert.Equal(t, 1, ms[0].Version)
	assert.Equal(t, "init", ms[0].Name)
	assert.Contains(t, ms[0].UpScript, "CREATE TABLE IF NOT EXISTS logs")
	assert.Contains(t, ms[0].DownScript, "DROP TABLE IF EXISTS logs")
	assert.Nil(t, GetMigrationByVersion(999))
}
