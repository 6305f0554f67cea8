package responsecache

import (
	"context"
	"sync"
	"time"
)

// implements Store using in-memory storage
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
	}
}

func (s *MemoryStore) Lookup(_ context.Context, fingerprint string, now time.Time) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[fingerprint]
	if !exists || entry.Expired(now) {
		return nil, nil
	}

	entry.HitCount++
	return cloneEntry(entry), nil
}

func (s *MemoryStore) Upsert(_ context.Context, params UpsertParams, now time.Time) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[params.Fingerprint]
	if !exists {
		entry = &Entry{
			Fingerprint: params.Fingerprint,
			Query:       params.Query,
			CreatedAt:   now,
		}
		s.entries[params.Fingerprint] = entry
	}

	entry.Response = params.Response
	entry.Sources = cloneSources(params.Sources)
	entry.ExpiresAt = now.Add(params.TTL)
	entry.HitCount++

	return cloneEntry(entry), nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.entries))
	s.entries = make(map[string]*Entry)

	return n, nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for fp, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, fp)
			n++
		}
	}

	return n, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, *cloneEntry(entry))
	}

	return entries, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func cloneEntry(e *Entry) *Entry {
	c := *e
	c.Sources = cloneSources(e.Sources)
	return &c
}

func cloneSources(sources []Source) []Source {
	if sources == nil {
		return nil
	}

	return append([]Source(nil), sources...)
}
