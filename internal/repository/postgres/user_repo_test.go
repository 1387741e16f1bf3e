package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yourusername/identity-api/internal/domain/entity"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &entity.VerificationCode{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestUserRepo_Create(t *testing.T) {
	t.Run("persists user and hashes password", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepo(db)

		user := &entity.User{
			Email:    "jane@example.com",
			Username: "jane",
			Password: "secret123",
			Slug:     "jane",
			IsActive: true,
		}
		err := repo.Create(context.Background(), user)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)

		stored, err := repo.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
	})

	t.Run("verified owner blocks the email", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepo(db)

		first := &entity.User{Email: "taken@example.com", Username: "first", Password: "secret123", Slug: "taken"}
		require.NoError(t, repo.Create(context.Background(), first))
		// Flip verified the way a confirmation would.
		first.IsVerified = true
		require.NoError(t, repo.Update(context.Background(), first))

		second := &entity.User{Email: "taken@example.com", Username: "second", Password: "secret123", Slug: "taken-1"}
		err := repo.Create(context.Background(), second)
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		var count int64
		require.NoError(t, db.Model(&entity.User{}).Where("email = ?", "taken@example.com").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("unverified owner is reclaimed", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepo(db)

		stale := &entity.User{Email: "pending@example.com", Username: "stale", Password: "secret123", Slug: "pending"}
		require.NoError(t, repo.Create(context.Background(), stale))
		staleID := stale.ID

		fresh := &entity.User{Email: "Pending@Example.com", Username: "fresh", Password: "newsecret", Slug: "pending-1"}
		require.NoError(t, repo.Create(context.Background(), fresh))
		assert.NotEqual(t, staleID, fresh.ID)

		_, err := repo.GetByID(context.Background(), staleID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		var count int64
		require.NoError(t, db.Model(&entity.User{}).Where("LOWER(email) = ?", "pending@example.com").Count(&count).Error)
		assert.EqualValues(t, 1, count)

		stored, err := repo.GetByUsername(context.Background(), "fresh")
		require.NoError(t, err)
		assert.False(t, stored.IsVerified)
	})
}

func TestUserRepo_GetByEmail_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	user := &entity.User{Email: "Jane@Example.com", Username: "jane", Password: "secret123", Slug: "jane"}
	require.NoError(t, repo.Create(context.Background(), user))

	found, err := repo.GetByEmail(context.Background(), "jane@example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	user := &entity.User{Email: "jane@example.com", Username: "jane", Password: "oldsecret", Slug: "jane"}
	require.NoError(t, repo.Create(context.Background(), user))

	require.NoError(t, repo.UpdatePassword(context.Background(), user.ID, "newsecret"))

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("newsecret"))
	assert.False(t, stored.CheckPassword("oldsecret"))

	err = repo.UpdatePassword(context.Background(), 9999, "whatever")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
