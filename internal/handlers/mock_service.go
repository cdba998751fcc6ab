package handlers

import (
	"context"
	"sync"

	"heating_panel/internal/metrics"
	"heating_panel/internal/models"
	"heating_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockMonitoring struct {
	mu   sync.Mutex
	view models.View
	snap models.Snapshot
}

func (m *mockMonitoring) Snapshot() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *mockMonitoring) View() models.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *mockMonitoring) setView(v models.View) {
	m.mu.Lock()
	m.view = v
	m.mu.Unlock()
}

type mockCommands struct {
	result  service.DispatchResult
	err     error
	intents []models.Intent
	cmds    []models.Command
}

// Handle mirrors the real dispatcher: intent validation errors come back unwrapped.
func (m *mockCommands) Handle(ctx context.Context, intent models.Intent) (service.DispatchResult, error) {
	m.intents = append(m.intents, intent)
	cmd, err := intent.Command()
	if err != nil {
		return service.DispatchResult{}, err
	}
	return m.Dispatch(ctx, cmd)
}

func (m *mockCommands) Dispatch(ctx context.Context, cmd models.Command) (service.DispatchResult, error) {
	m.cmds = append(m.cmds, cmd)
	res := m.result
	res.Command = cmd
	res.Path = cmd.Path()
	return res, m.err
}

type mockModes struct {
	enabled bool
	sets    []bool
}

func (m *mockModes) Testing() bool { return m.enabled }

func (m *mockModes) SetTesting(enabled bool) {
	m.sets = append(m.sets, enabled)
	m.enabled = enabled
}

type mockHistory struct {
	records   []models.DispatchRecord
	lastLimit int
}

func (m *mockHistory) Recent(limit int) []models.DispatchRecord {
	m.lastLimit = limit
	return m.records
}

func (m *mockHistory) Lookup(id string) (models.DispatchRecord, bool) {
	for _, r := range m.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.DispatchRecord{}, false
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, metrics.New(), nil)
	return h.InitRoutes()
}

func newTestServices(mon *mockMonitoring, cmds *mockCommands, modes *mockModes) *service.Service {
	return &service.Service{
		Monitoring: mon,
		Commands:   cmds,
		Modes:      modes,
		History:    &mockHistory{},
	}
}
