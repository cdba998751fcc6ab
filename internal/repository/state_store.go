package repository

import (
	"sync"
	"sync/atomic"
	"time"

	"heating_panel/internal/models"
)

// MemoryState is the in-process StateStore. Nothing is persisted.
type MemoryState struct {
	mu      sync.Mutex
	issued  map[models.Subsystem]uint64
	states  map[models.Subsystem]models.SubsystemState
	tank    *models.TankReading
	tankAt  time.Time
	testing atomic.Bool
	now     func() time.Time
}

// Ensure implementation of StateStore interface at compile time.
var _ StateStore = (*MemoryState)(nil)

func NewMemoryState(testing bool, now func() time.Time) *MemoryState {
	if now == nil {
		now = time.Now
	}
	s := &MemoryState{
		issued: make(map[models.Subsystem]uint64, len(models.Subsystems)),
		states: make(map[models.Subsystem]models.SubsystemState, len(models.Subsystems)),
		now:    now,
	}
	s.testing.Store(testing)
	return s
}

func (m *MemoryState) NextSeq(s models.Subsystem) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued[s]++
	return m.issued[s]
}

// ApplyStatus keeps the previous off time when the report carries none,
// so the last known schedule stays on screen until the device reports a new one.
func (m *MemoryState) ApplyStatus(s models.Subsystem, seq uint64, r models.StatusReport) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.states[s]
	if seq <= cur.Seq {
		return false
	}
	cur.On = r.State
	cur.Seq = seq
	cur.UpdatedAt = m.now().UTC()
	if r.OffTime != nil && s.SupportsOffTime() {
		t := r.OffTime.UTC()
		cur.OffTime = &t
	}
	m.states[s] = cur
	return true
}

func (m *MemoryState) SetTank(r models.TankReading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reading := r
	m.tank = &reading
	m.tankAt = m.now().UTC()
}

// Snapshot copies the state so callers may read it without holding the lock.
func (m *MemoryState) Snapshot() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := make(map[models.Subsystem]models.SubsystemState, len(m.states))
	for k, v := range m.states {
		if v.OffTime != nil {
			t := *v.OffTime
			v.OffTime = &t
		}
		subs[k] = v
	}
	snap := models.Snapshot{
		Subsystems:    subs,
		TankUpdatedAt: m.tankAt,
		Testing:       m.testing.Load(),
	}
	if m.tank != nil {
		t := *m.tank
		snap.Tank = &t
	}
	return snap
}

func (m *MemoryState) Testing() bool { return m.testing.Load() }

func (m *MemoryState) SetTesting(enabled bool) { m.testing.Store(enabled) }
