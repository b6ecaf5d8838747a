package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"tone/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "test@example.com"}))

	t.Run("Success", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Nil(t, user)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "test@example.com"}))

	t.Run("Success", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "test@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("Missing user is not an error", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_GetByEmail_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("test@example.com", 1).
		WillReturnError(errors.New("connection timeout"))

	user, err := repo.GetByEmail(ctx, "test@example.com")
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com"}))

	err := repo.Create(ctx, &models.User{Email: "dup@example.com"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_FindOrCreateByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Creates on first login", func(t *testing.T) {
		user, err := repo.FindOrCreateByEmail(ctx, "first@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotZero(t, user.ID)
	})

	t.Run("Returns existing user on repeat login", func(t *testing.T) {
		first, err := repo.FindOrCreateByEmail(ctx, "repeat@example.com")
		require.NoError(t, err)

		second, err := repo.FindOrCreateByEmail(ctx, "repeat@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		db.Model(&models.User{}).Where("email = ?", "repeat@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})
}
