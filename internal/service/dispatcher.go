package service

import (
	"context"
	"fmt"

	"heating_panel/internal/logger"
	"heating_panel/internal/metrics"
	"heating_panel/internal/models"
	"heating_panel/internal/repository"
)

// DispatchResult describes what happened to one command.
type DispatchResult struct {
	Command    models.Command `json:"command"`
	Path       string         `json:"path"`
	Suppressed bool           `json:"suppressed"`
	RequestID  string         `json:"request_id,omitempty"`
}

// DispatcherService sends exactly one request per call. It never compares
// against known state, never retries and never writes state: the next poll
// is what moves the UI.
type DispatcherService struct {
	device  Device
	store   repository.StateStore
	journal repository.DispatchJournal // optional
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewDispatcherService(dev Device, store repository.StateStore, journal repository.DispatchJournal, log *logger.Logger, m *metrics.Metrics) *DispatcherService {
	if log == nil {
		log = logger.Nop()
	}
	return &DispatcherService{device: dev, store: store, journal: journal, log: log, metrics: m}
}

// Handle converts a typed intent into its command and dispatches it.
func (d *DispatcherService) Handle(ctx context.Context, intent models.Intent) (DispatchResult, error) {
	cmd, err := intent.Command()
	if err != nil {
		return DispatchResult{}, err
	}
	return d.Dispatch(ctx, cmd)
}

// Dispatch sends cmd unless testing mode is on, which is checked on every call.
func (d *DispatcherService) Dispatch(ctx context.Context, cmd models.Command) (DispatchResult, error) {
	if err := validateCommand(cmd); err != nil {
		return DispatchResult{}, err
	}
	res := DispatchResult{Command: cmd, Path: cmd.Path()}
	sub := cmd.Subsystem.String()

	if d.store.Testing() {
		res.Suppressed = true
		d.metrics.Dispatch(sub, metrics.ResultSuppressed)
		d.log.Debugw("dispatch_suppressed", "path", res.Path)
		d.record(res, models.OutcomeSuppressed, nil)
		return res, nil
	}

	id, err := d.device.SendCommand(ctx, cmd)
	res.RequestID = id
	if err != nil {
		d.metrics.Dispatch(sub, metrics.ResultError)
		d.log.Warnw("dispatch_failed", "path", res.Path, "request_id", id, "err", err)
		d.record(res, models.OutcomeFailed, err)
		return res, fmt.Errorf("dispatch %s: %w", res.Path, err)
	}
	d.metrics.Dispatch(sub, metrics.ResultOK)
	d.log.Infow("dispatch_sent", "path", res.Path, "request_id", id)
	d.record(res, models.OutcomeSent, nil)
	return res, nil
}

func (d *DispatcherService) record(res DispatchResult, outcome string, err error) {
	if d.journal == nil {
		return
	}
	rec := models.DispatchRecord{ID: res.RequestID, Command: res.Command, Path: res.Path, Outcome: outcome}
	if err != nil {
		rec.Error = err.Error()
	}
	d.journal.Record(rec)
}

func validateCommand(cmd models.Command) error {
	if _, err := models.ParseSubsystem(string(cmd.Subsystem)); err != nil {
		return err
	}
	if cmd.DurationMinutes < 0 {
		return models.ErrInvalidDuration
	}
	if cmd.On && cmd.DurationMinutes > 0 && !cmd.Subsystem.SupportsOffTime() {
		return models.ErrDurationUnsupported
	}
	return nil
}
