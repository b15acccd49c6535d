package ticketing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// CounterStore allocates per-guild ticket numbers. Counters are persisted as
// a flat JSON object of guild ID to integer, and allocation is serialized so
// that concurrent creates never see the same number.
type CounterStore struct {
	mu       sync.Mutex
	path     string
	counters map[string]int
}

// NewCounterStore creates a counter store backed by the given file. A
// missing file is not an error; it is created on first save.
func NewCounterStore(path string) (*CounterStore, error) {
	s := &CounterStore{
		path:     path,
		counters: make(map[string]int),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.save(); err != nil {
				return nil, fmt.Errorf("error creating counters file: %w", err)
			}
			return s, nil
		}
		return nil, fmt.Errorf("error reading counters file: %w", err)
	}

	if err := json.Unmarshal(data, &s.counters); err != nil {
		return nil, fmt.Errorf("error parsing counters file: %w", err)
	}
	return s, nil
}

// Next allocates the next ticket number for a guild and persists the
// counter. The lock is held across increment and save so numbers are never
// duplicated or skipped.
func (s *CounterStore) Next(guildID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[guildID]++
	n := s.counters[guildID]

	if err := s.save(); err != nil {
		// Roll the increment back so the number is not skipped; nothing was
		// handed out.
		s.counters[guildID]--
		return 0, fmt.Errorf("error saving counters: %w", err)
	}
	return n, nil
}

// Ensure raises a guild's counter to at least n and persists it. Counters
// that are already at or past n are left alone. This recovers from a lost or
// reset counters file by replaying the highest number known elsewhere.
func (s *CounterStore) Ensure(guildID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counters[guildID] >= n {
		return nil
	}

	prev := s.counters[guildID]
	s.counters[guildID] = n
	if err := s.save(); err != nil {
		s.counters[guildID] = prev
		return fmt.Errorf("error saving counters: %w", err)
	}
	return nil
}

// Current returns the last allocated number for a guild, zero if none.
func (s *CounterStore) Current(guildID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[guildID]
}

// Ping verifies that the backing file is still writable. Used by the health
// endpoint.
func (s *CounterStore) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *CounterStore) save() error {
	data, err := json.Marshal(s.counters)
	if err != nil {
		return fmt.Errorf("error encoding counters: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("error writing counters file: %w", err)
	}
	return nil
}
