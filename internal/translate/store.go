package translate

import (
	"fmt"
	"sync"

	"github.com/ovoronin/nhk-weather-bot/internal/domain"
)

// Store is the process-wide translation cache. It grows monotonically: keys
// are never evicted and a learned value never replaces an existing one.
// Unbounded growth is acceptable: the vocabulary is the small, fixed set of
// city names on the forecast map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value   string
	learned bool // false for trusted seed entries
}

// NewStore creates a store pre-populated with trusted seed mappings.
func NewStore(seed map[string]string) *Store {
	entries := make(map[string]entry, len(seed))
	for term, value := range seed {
		entries[term] = entry{value: value}
	}
	return &Store{entries: entries}
}

// Lookup returns the cached translation for term, if any.
func (s *Store) Lookup(term string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[term]
	return e.value, ok
}

// Learn records a translation obtained from the generation capability.
// Values without a Cyrillic rune are rejected, and an already-cached term
// keeps its original value.
func (s *Store) Learn(term, value string) error {
	if term == "" || value == "" {
		return fmt.Errorf("learn %q: empty term or value", term)
	}
	if !domain.ContainsCyrillic(value) {
		return fmt.Errorf("learn %q: value %q has no Cyrillic characters", term, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[term]; ok {
		return nil
	}
	s.entries[term] = entry{value: value, learned: true}
	return nil
}

// Missing returns the distinct non-empty terms not yet cached, in input order.
func (s *Store) Missing(terms []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(terms))
	var missing []string
	for _, term := range terms {
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if _, ok := s.entries[term]; !ok {
			missing = append(missing, term)
		}
	}
	return missing
}

// Resolve maps every input term to its cached translation, falling back to
// the term itself. The result always contains every input term as a key.
func (s *Store) Resolve(terms []string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(terms))
	for _, term := range terms {
		if e, ok := s.entries[term]; ok {
			out[term] = e.value
		} else {
			out[term] = term
		}
	}
	return out
}

// Len returns the number of cached entries, seeds included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
