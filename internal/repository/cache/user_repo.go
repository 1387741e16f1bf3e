// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/identity-api/internal/domain/entity"
	"github.com/yourusername/identity-api/internal/domain/repository"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
)

// CachingUserRepo decorates a UserRepository with read-through caching of
// profile lookups (slug and id). Writes invalidate best-effort; the TTL is
// kept short because verification state can also change through
// transaction-bound repositories that bypass this decorator.
type CachingUserRepo struct {
	inner repository.UserRepository
	cache repository.CacheRepository
	ttl   time.Duration
}

func NewCachingUserRepo(inner repository.UserRepository, cache repository.CacheRepository, ttl time.Duration) *CachingUserRepo {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingUserRepo{inner: inner, cache: cache, ttl: ttl}
}

func slugKey(slug string) string { return "user:slug:" + slug }
func idKey(id uint) string       { return fmt.Sprintf("user:id:%d", id) }

func (r *CachingUserRepo) GetBySlug(ctx context.Context, slug string) (*entity.User, error) {
	if r.cache != nil {
		var cached entity.User
		if err := r.cache.GetJSON(slugKey(slug), &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			// Cache trouble is not a lookup failure; fall through to storage.
			_ = r.cache.Delete(slugKey(slug))
		}
	}

	user, err := r.inner.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		_ = r.cache.SetJSON(slugKey(slug), user, r.ttl)
	}
	return user, nil
}

func (r *CachingUserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	if r.cache != nil {
		var cached entity.User
		if err := r.cache.GetJSON(idKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		_ = r.cache.SetJSON(idKey(id), user, r.ttl)
	}
	return user, nil
}

func (r *CachingUserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.inner.Create(ctx, user)
}

func (r *CachingUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	// Authentication reads must always see fresh state.
	return r.inner.GetByEmail(ctx, email)
}

func (r *CachingUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.inner.GetByUsername(ctx, username)
}

func (r *CachingUserRepo) Update(ctx context.Context, user *entity.User) error {
	if err := r.inner.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(user)
	return nil
}

func (r *CachingUserRepo) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	if err := r.inner.UpdatePassword(ctx, userID, newPassword); err != nil {
		return err
	}
	if r.cache != nil {
		_ = r.cache.Delete(idKey(userID))
	}
	return nil
}

func (r *CachingUserRepo) invalidate(user *entity.User) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(idKey(user.ID))
	if user.Slug != "" {
		_ = r.cache.Delete(slugKey(user.Slug))
	}
}
