// Package store persists analysis results and service counters in BadgerDB.
// Analyses are cached per FEN so repeat queries skip regeneration; counters
// accumulate across restarts.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyStats          = "stats"
	analysisKeyPrefix = "analysis:"
)

// ErrNotFound reports a cache miss.
var ErrNotFound = errors.New("store: not found")

// Analysis is the cached result of a full position analysis.
type Analysis struct {
	FEN        string    `json:"fen"`
	Moves      []string  `json:"moves"`
	InCheck    bool      `json:"in_check"`
	ComputedAt time.Time `json:"computed_at"`
}

// Stats stores service counters.
type Stats struct {
	AnalysesServed int `json:"analyses_served"`
	CacheHits      int `json:"cache_hits"`
	LegalityChecks int `json:"legality_checks"`
	PositionsSaved int `json:"positions_saved"`
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database under dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveAnalysis caches an analysis under its FEN.
func (s *Store) SaveAnalysis(a *Analysis) error {
	a.ComputedAt = time.Now()

	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(analysisKeyPrefix+a.FEN), data)
	})
}

// LoadAnalysis returns the cached analysis for fen, or ErrNotFound on a miss.
func (s *Store) LoadAnalysis(fen string) (*Analysis, error) {
	var a Analysis

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(analysisKeyPrefix + fen))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &a)
		})
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadStats loads the counters, returning zeroes when none were saved yet.
func (s *Store) LoadStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// SaveStats saves the counters.
func (s *Store) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// Bump loads the counters, applies fn, and saves the result.
func (s *Store) Bump(fn func(*Stats)) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	fn(stats)
	return s.SaveStats(stats)
}
