// Package history keeps the bounded list of recent form inputs.
package history

import (
	"encoding/json"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/domain"
)

const (
	// Key is the storage key holding the JSON array of entries
	Key = "inputHistory"
	// Limit is the number of entries kept
	Limit = 3
)

// KV is the persistence the store needs; *store.Store satisfies it
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Store owns every read and write of the input history.
// Writers in other processes sharing the same file race with last write wins.
type Store struct {
	mu     sync.Mutex
	kv     KV
	logger *zap.Logger
}

// New creates a history store over kv
func New(kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns entries most-recent first. Missing or unreadable storage
// yields an empty list.
func (s *Store) Load() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save records entry, replacing any entry with the same key, and returns
// the updated list
func (s *Store) Save(entry domain.HistoryEntry) []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entries = slices.DeleteFunc(entries, entry.SameKey)
	entries = append([]domain.HistoryEntry{entry}, entries...)
	if len(entries) > Limit {
		entries = entries[:Limit]
	}

	s.persist(entries)
	return entries
}

// Remove deletes the entry with the given timestamp and returns the
// updated list; an unknown timestamp changes nothing
func (s *Store) Remove(timestamp int64) []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	kept := slices.DeleteFunc(slices.Clone(entries), func(e domain.HistoryEntry) bool {
		return e.Timestamp == timestamp
	})
	if len(kept) == len(entries) {
		return entries
	}

	s.persist(kept)
	return kept
}

func (s *Store) load() []domain.HistoryEntry {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		s.logger.Warn("read history", zap.Error(err))
		return []domain.HistoryEntry{}
	}
	if !ok || raw == "" {
		return []domain.HistoryEntry{}
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("discard corrupt history", zap.Error(err))
		return []domain.HistoryEntry{}
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries
}

func (s *Store) persist(entries []domain.HistoryEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn("encode history", zap.Error(err))
		return
	}
	if err := s.kv.Put(Key, string(data)); err != nil {
		s.logger.Warn("write history", zap.Error(err))
	}
}
