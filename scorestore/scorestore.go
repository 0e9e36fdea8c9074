// Package scorestore provides an in-memory store for the PageRank scores
// produced by the ranking service so they can be queried by the score API.
package scorestore

import (
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/pagerank"
)

// ErrNotFound is returned when a score lookup fails.
var ErrNotFound = xerrors.New("not found")

// InMemory is a score store backed by an in-memory map. It is safe for
// concurrent use: the ranking service writes fresh scores while the score
// API reads them.
type InMemory struct {
	mu        sync.RWMutex
	scores    map[string]float64
	updatedAt time.Time
}

// NewInMemory creates a new in-memory score store.
func NewInMemory() *InMemory {
	return &InMemory{scores: make(map[string]float64)}
}

// UpsertScore records or replaces the PageRank score for a page.
func (s *InMemory) UpsertScore(page string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores[page] = score
	s.updatedAt = time.Now()
	return nil
}

// Score looks up the PageRank score for a single page.
func (s *InMemory) Score(page string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, exists := s.scores[page]
	if !exists {
		return 0, xerrors.Errorf("score for page %q: %w", page, ErrNotFound)
	}
	return score, nil
}

// Scores returns a copy of the stored scores for every known page.
func (s *InMemory) Scores() (pagerank.Scores, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(pagerank.Scores, len(s.scores))
	for page, score := range s.scores {
		out[page] = score
	}
	return out, nil
}

// UpdatedAt returns the time of the most recent score upsert or the zero
// time if no scores have been stored yet.
func (s *InMemory) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
