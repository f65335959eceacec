package cache

import (
	"encoding/json"
	"time"

	"github.com/ppiankov/gazetteer/internal/model"
)

// Store is the typed result cache: CacheRecord values over a memory layer
// with an optional disk layer promoted through on hit.
type Store struct {
	memory Cache
	disk   Cache // nil when persistence is disabled
	ttl    time.Duration
}

// NewStore builds a store from cache configuration. An empty DiskDir
// disables the disk layer.
func NewStore(cfg model.CacheConfig) *Store {
	s := &Store{
		memory: NewMemoryCache(cfg.MemoryTTL, 10*time.Minute),
		ttl:    cfg.MemoryTTL,
	}
	if cfg.DiskDir != "" {
		s.disk = NewDiskCache(cfg.DiskDir, cfg.DiskTTL)
	}
	return s
}

// Get retrieves the record for a key, checking memory before disk.
func (s *Store) Get(key string) (*model.CacheRecord, bool) {
	if data, found := s.memory.Get(key); found {
		return decodeRecord(data)
	}
	if s.disk != nil {
		if data, found := s.disk.Get(key); found {
			_ = s.memory.Set(key, data, 0)
			return decodeRecord(data)
		}
	}
	return nil, false
}

// Put stores an accepted resolution under its key.
func (s *Store) Put(key string, entry model.CandidateEntry, breakdown model.ScoreBreakdown) error {
	record := model.CacheRecord{
		Key:        key,
		Entry:      entry,
		Score:      breakdown,
		InsertedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.memory.Set(key, data, 0); err != nil {
		return err
	}
	if s.disk != nil {
		return s.disk.Set(key, data, 0)
	}
	return nil
}

// Invalidate evicts one key from every layer.
func (s *Store) Invalidate(key string) {
	_ = s.memory.Delete(key)
	if s.disk != nil {
		_ = s.disk.Delete(key)
	}
}

// Clear drops every record.
func (s *Store) Clear() {
	_ = s.memory.Clear()
	if s.disk != nil {
		_ = s.disk.Clear()
	}
}

func decodeRecord(data []byte) (*model.CacheRecord, bool) {
	var record model.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	return &record, true
}
