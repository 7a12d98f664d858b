// Package frequency remembers the symbols and emoji typed most recently.
package frequency

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
)

// Store is a bounded recently-used list of symbol and emoji text. Each entry
// also counts how often it was typed while it stayed in the list.
type Store struct {
	cache  *lru.Cache
	events *event.Manager
}

// New creates a store keeping size entries.
func New(size int, events *event.Manager) (*Store, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("frequency store of size %d: %w", size, err)
	}
	return &Store{cache: cache, events: events}, nil
}

// Register records a use of a. Only symbols and emoji are tracked.
func (s *Store) Register(a keyboard.Action) {
	if !a.TracksFrequency() || a.Text == "" {
		return
	}
	count := 1
	if v, ok := s.cache.Get(a.Text); ok {
		count = v.(int) + 1
	}
	if evicted := s.cache.Add(a.Text, count); evicted {
		logger.DebugTagf("frequency", "Evicted oldest entry for %q", a.Text)
	}
	s.events.Dispatch(event.TypeRecentChanged, event.RecentChangedData{Recent: s.Recent()})
}

// Recent returns the tracked text, most recent first.
func (s *Store) Recent() []string {
	keys := s.cache.Keys()
	out := make([]string, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, keys[i].(string))
	}
	return out
}

// Count returns how often text was registered while tracked.
func (s *Store) Count(text string) int {
	if v, ok := s.cache.Peek(text); ok {
		return v.(int)
	}
	return 0
}

// Resize changes the capacity, dropping the oldest entries if it shrinks.
func (s *Store) Resize(size int) {
	if size <= 0 {
		return
	}
	s.cache.Resize(size)
}
