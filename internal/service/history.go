package service

import (
	"heating_panel/internal/models"
	"heating_panel/internal/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = repository.DefaultJournalSize
)

// HistoryService reads the dispatch journal.
type HistoryService struct {
	journal repository.DispatchJournal
}

func NewHistoryService(journal repository.DispatchJournal) *HistoryService {
	return &HistoryService{journal: journal}
}

// Recent returns the newest dispatch records. limit is clamped to
// [1, MaxHistoryLimit]; zero or less means DefaultHistoryLimit.
func (s *HistoryService) Recent(limit int) []models.DispatchRecord {
	if s.journal == nil {
		return []models.DispatchRecord{}
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.journal.Recent(limit)
}

func (s *HistoryService) Lookup(id string) (models.DispatchRecord, bool) {
	if s.journal == nil {
		return models.DispatchRecord{}, false
	}
	return s.journal.Get(id)
}
