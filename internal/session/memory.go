package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MemoryRecord is one fixed session. ExpiresAt nil means it never expires.
type MemoryRecord struct {
	Key       string     `yaml:"key"`
	Value     string     `yaml:"value"`
	ExpiresAt *time.Time `yaml:"expires_at"`
}

type memorySeed struct {
	Sessions []MemoryRecord `yaml:"sessions"`
}

// MemoryStore serves a fixed set of sessions from process memory. It is
// never written after construction.
type MemoryStore struct {
	entries map[string]MemoryRecord
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding records. Later duplicates win.
func NewMemoryStore(records ...MemoryRecord) *MemoryStore {
	entries := make(map[string]MemoryRecord, len(records))
	for _, r := range records {
		entries[r.Key] = r
	}
	return &MemoryStore{
		entries: entries,
		now:     time.Now,
	}
}

// LoadMemoryStore reads a YAML seed file of the form
//
//	sessions:
//	  - key: satoken:login:token:abc
//	    value: "10001"
//	    expires_at: 2030-01-01T00:00:00Z
func LoadMemoryStore(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory sessions: %w", err)
	}
	var seed memorySeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse memory sessions %s: %w", path, err)
	}
	for i, r := range seed.Sessions {
		if r.Key == "" {
			return nil, fmt.Errorf("%w: entry %d in %s", ErrEmptySessionKey, i, path)
		}
	}
	return NewMemoryStore(seed.Sessions...), nil
}

// Len returns the number of sessions held, expired ones included
func (s *MemoryStore) Len() int {
	return len(s.entries)
}

// Get implements Store.Get
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	r, ok := s.entries[key]
	if !ok {
		return "", ErrSessionNotFound
	}
	if r.ExpiresAt != nil && !s.now().Before(*r.ExpiresAt) {
		return "", ErrSessionNotFound
	}
	return r.Value, nil
}

// Ping implements Store.Ping
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close implements Store.Close
func (s *MemoryStore) Close() error { return nil }
