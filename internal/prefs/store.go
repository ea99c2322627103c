package prefs

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
)

// DefaultKey is the fixed storage slot for the preference record.
const DefaultKey = "a11y-settings"

// Backend is the storage service the store persists through: a fallible
// string key/value slot. Implementations must return ErrNotFound for a
// never-written key.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Store loads and saves the preference record. Persistence is best-effort
// by design: Load never fails (it falls back to defaults) and Save swallows
// backend errors after logging them. The page must stay usable with no
// working storage at all.
type Store struct {
	backend Backend
	key     string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the storage slot key.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// NewStore creates a store over the given backend.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{backend: backend, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted record and merges it field-by-field over the
// defaults. Absent or corrupt data yields exactly the default record.
func (s *Store) Load(ctx context.Context) Record {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if err != ErrNotFound {
			log.Warn("preference load failed, using defaults", "key", s.key, "error", err)
		}
		return Default()
	}

	var partial partialRecord
	if err := json.Unmarshal([]byte(raw), &partial); err != nil {
		log.Warn("stored preferences are corrupt, using defaults", "key", s.key, "error", err)
		return Default()
	}
	return partial.merge(Default())
}

// Save overwrites the persisted slot with the whole record. Failures are
// logged and swallowed.
func (s *Store) Save(ctx context.Context, r Record) {
	data, err := json.Marshal(r.Clamped())
	if err != nil {
		log.Error("preference encode failed", "error", err)
		return
	}
	if err := s.backend.Set(ctx, s.key, string(data)); err != nil {
		log.Warn("preference save failed", "key", s.key, "error", err)
	}
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
