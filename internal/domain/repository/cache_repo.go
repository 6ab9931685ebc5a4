package repository

import (
	"time"
)

// CacheRepository is the volatile KV store used for derived snapshots
// (latest result, ranking caches) and event dedupe flags. Never the source
// of truth for anything.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error

	// SetNX sets the key only if absent. Returns true when the key was set.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
