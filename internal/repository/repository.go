package repository

import (
	"time"

	"heating_panel/internal/models"
)

// StateStore owns the panel's application state: the last applied status per
// subsystem, the last tank reading and the runtime mode flags.
type StateStore interface {
	// NextSeq allocates the sequence number for a new status fetch of s.
	NextSeq(s models.Subsystem) uint64
	// ApplyStatus stores r for s unless a fetch with a newer or equal seq was already applied.
	ApplyStatus(s models.Subsystem, seq uint64, r models.StatusReport) bool
	SetTank(r models.TankReading)
	Snapshot() models.Snapshot

	Testing() bool
	SetTesting(enabled bool)
}

type Repository struct {
	State   StateStore
	Journal DispatchJournal
}

// NewRepository builds the in-memory stores. journalSize <= 0 uses DefaultJournalSize.
func NewRepository(testing bool, journalSize int) (*Repository, error) {
	if journalSize <= 0 {
		journalSize = DefaultJournalSize
	}
	journal, err := NewLRUJournal(journalSize, time.Now)
	if err != nil {
		return nil, err
	}
	return &Repository{
		State:   NewMemoryState(testing, time.Now),
		Journal: journal,
	}, nil
}
