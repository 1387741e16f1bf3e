package repository

import "time"

// CacheRepository is a generic key-value cache with JSON helpers. Misses are
// reported as apperrors.ErrNotFound.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Exists(key string) (bool, error)
}
