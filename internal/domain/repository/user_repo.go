package repository

import (
	"context"

	"github.com/yourusername/identity-api/internal/domain/entity"
)

// UserRepository is the only abstraction allowed to touch user storage.
// Implementations surface structural errors (apperrors.ErrNotFound,
// apperrors.ErrConflict); business meaning is applied by services.
type UserRepository interface {
	// Create persists a new user. A verified owner of the same email
	// (case-insensitive) yields ErrConflict; an unverified owner is deleted
	// and replaced, so abandoned half-registrations stay reclaimable. A
	// unique-constraint violation at commit time also yields ErrConflict.
	Create(ctx context.Context, user *entity.User) error

	GetByID(ctx context.Context, id uint) (*entity.User, error)

	// GetByEmail looks the user up case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	GetBySlug(ctx context.Context, slug string) (*entity.User, error)

	// Update persists the given user as-is.
	Update(ctx context.Context, user *entity.User) error

	// UpdatePassword hashes newPassword with bcrypt and writes it directly,
	// bypassing any field the caller did not intend to change.
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
}
