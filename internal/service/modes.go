package service

import (
	"heating_panel/internal/logger"
	"heating_panel/internal/repository"
)

type ModeService struct {
	store repository.StateStore
	log   *logger.Logger
}

func NewModeService(store repository.StateStore, log *logger.Logger) *ModeService {
	if log == nil {
		log = logger.Nop()
	}
	return &ModeService{store: store, log: log}
}

func (s *ModeService) Testing() bool { return s.store.Testing() }

// SetTesting switches outbound command suppression on or off. Polling is unaffected.
func (s *ModeService) SetTesting(enabled bool) {
	s.store.SetTesting(enabled)
	s.log.Infow("testing_mode_changed", "enabled", enabled)
}
