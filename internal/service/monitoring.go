package service

import (
	"heating_panel/internal/models"
	"heating_panel/internal/repository"
)

type MonitoringService struct {
	store     repository.StateStore
	endpoints []models.Endpoint
	bind      BindOptions
}

func NewMonitoringService(store repository.StateStore, endpoints []models.Endpoint, bind BindOptions) *MonitoringService {
	return &MonitoringService{store: store, endpoints: endpoints, bind: bind}
}

// Snapshot returns a copy of the current application state.
func (s *MonitoringService) Snapshot() models.Snapshot {
	return s.store.Snapshot()
}

// View binds the current state for display.
func (s *MonitoringService) View() models.View {
	return BindView(s.store.Snapshot(), s.endpoints, s.bind)
}
