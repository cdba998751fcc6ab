package repository

import (
	"fmt"
	"time"

	"heating_panel/internal/models"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultJournalSize is how many dispatch records are kept in memory.
const DefaultJournalSize = 64

// DispatchJournal keeps the most recent dispatch attempts. Older records are
// evicted once the journal is full.
type DispatchJournal interface {
	// Record stores rec, filling in ID and At when empty, and returns the stored copy.
	Record(rec models.DispatchRecord) models.DispatchRecord
	// Recent returns up to limit records, newest first. limit <= 0 means all.
	Recent(limit int) []models.DispatchRecord
	Get(id string) (models.DispatchRecord, bool)
	Len() int
}

// LRUJournal is a DispatchJournal backed by a fixed-size LRU cache.
// Lookups use Peek so reading a record never changes eviction order.
type LRUJournal struct {
	cache *lru.Cache
	now   func() time.Time
}

var _ DispatchJournal = (*LRUJournal)(nil)

func NewLRUJournal(size int, now func() time.Time) (*LRUJournal, error) {
	if now == nil {
		now = time.Now
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("dispatch journal: %w", err)
	}
	return &LRUJournal{cache: c, now: now}, nil
}

func (j *LRUJournal) Record(rec models.DispatchRecord) models.DispatchRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = j.now().UTC()
	}
	j.cache.Add(rec.ID, rec)
	return rec
}

func (j *LRUJournal) Recent(limit int) []models.DispatchRecord {
	keys := j.cache.Keys() // oldest first
	if limit <= 0 || limit > len(keys) {
		limit = len(keys)
	}
	out := make([]models.DispatchRecord, 0, limit)
	for i := len(keys) - 1; i >= 0 && len(out) < limit; i-- {
		if v, ok := j.cache.Peek(keys[i]); ok {
			out = append(out, v.(models.DispatchRecord))
		}
	}
	return out
}

func (j *LRUJournal) Get(id string) (models.DispatchRecord, bool) {
	v, ok := j.cache.Peek(id)
	if !ok {
		return models.DispatchRecord{}, false
	}
	return v.(models.DispatchRecord), true
}

func (j *LRUJournal) Len() int { return j.cache.Len() }
