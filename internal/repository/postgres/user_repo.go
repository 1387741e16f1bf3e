package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yourusername/identity-api/internal/domain/entity"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
)

// SQLSTATE for unique constraint violations. Two concurrent registrations
// for the same email race at this constraint; the loser surfaces ErrConflict.
const uniqueViolation = "23505"

// UserRepo implements repository.UserRepository on PostgreSQL via GORM.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persists a new user, hashing the plaintext password explicitly
// (no persistence hooks). A verified owner of the email blocks creation;
// an unverified owner is deleted and replaced.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email ownership: %w", err)
	}
	if existing != nil {
		if existing.IsVerified {
			return fmt.Errorf("%w: a verified user already owns this email", apperrors.ErrConflict)
		}
		// Stale half-registration: reclaim the email. Codes go with the row
		// via ON DELETE CASCADE.
		if err := r.db.WithContext(ctx).Delete(&entity.User{}, existing.ID).Error; err != nil {
			return fmt.Errorf("failed to reclaim unverified user: %w", err)
		}
		log.Printf("[UserRepo] reclaimed unverified registration for email=%s (old id=%d)", existing.Email, existing.ID)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email, username or slug already taken", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail performs a case-insensitive lookup: email is the authentication
// anchor and its uniqueness compares lowercased.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetBySlug(ctx context.Context, slug string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdatePassword hashes newPassword and writes it with direct SQL so no
// other column is touched.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := r.db.WithContext(ctx).Exec(
		"UPDATE users SET password = ?, updated_at = ? WHERE id = ?",
		string(hashed), time.Now(), userID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
