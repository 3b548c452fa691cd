// Package storage implements the client's durable key-value store, one file
// per key under a state directory. When the directory cannot be used the
// store degrades to a no-op so callers behave as if running on a host
// without persistent storage.
package storage

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Keys owned by the client state holders.
const (
	// TokenKey holds the raw bearer token string.
	TokenKey = "auth_token"
	// CartKey holds the serialized cart snapshot.
	CartKey = "shopping_cart"
)

// Store is a key→string persistence capability backed by plain files.
type Store struct {
	dir       string
	available bool
	log       *zap.Logger
	mu        sync.Mutex
}

// New opens (creating if needed) the state directory. A directory that
// cannot be created yields an unavailable store, not an error.
func New(dir string, log *zap.Logger) *Store {
	s := &Store{dir: dir, log: log}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Warn("state directory unavailable, persistence disabled",
			zap.String("dir", dir), zap.Error(err))
		return s
	}
	s.available = true
	return s
}

// Available reports whether the store can persist values.
func (s *Store) Available() bool {
	return s.available
}

// Get returns the stored value for key. The second return is false when the
// store is unavailable, the key is absent, or the file cannot be read.
func (s *Store) Get(key string) (string, bool) {
	if !s.available {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read stored value", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// Set writes value under key. Failures are logged and swallowed; persistence
// is best-effort and must never take down a state mutation.
func (s *Store) Set(key, value string) {
	if !s.available {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		s.log.Warn("failed to persist value", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes the value under key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	if !s.available {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove stored value", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
