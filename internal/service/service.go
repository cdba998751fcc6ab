package service

import (
	"context"
	"time"

	"heating_panel/internal/logger"
	"heating_panel/internal/metrics"
	"heating_panel/internal/models"
	"heating_panel/internal/repository"
)

// Device is the backend the panel polls and commands.
type Device interface {
	GetStatus(ctx context.Context, ep models.Endpoint) (models.StatusReport, error)
	GetTank(ctx context.Context) (models.TankReading, error)
	SendCommand(ctx context.Context, cmd models.Command) (string, error)
}

// Listener is told whenever a poll result has been applied.
type Listener interface {
	StateChanged()
}

// Monitoring exposes read-only state and its bound view.
type Monitoring interface {
	Snapshot() models.Snapshot
	View() models.View
}

// Commands turns user intents into outbound device commands.
type Commands interface {
	Handle(ctx context.Context, intent models.Intent) (DispatchResult, error)
	Dispatch(ctx context.Context, cmd models.Command) (DispatchResult, error)
}

// Modes exposes the runtime testing flag.
type Modes interface {
	Testing() bool
	SetTesting(enabled bool)
}

// History exposes recent dispatch attempts. Records are informational and
// never feed back into displayed state.
type History interface {
	Recent(limit int) []models.DispatchRecord
	Lookup(id string) (models.DispatchRecord, bool)
}

// Poller runs the status and tank polling loops.
// Stop cancels both loops and waits for in-flight fetches.
type Poller interface {
	Start(ctx context.Context)
	Stop()
	AddListener(l Listener)
}

// Options tunes the services. Zero values fall back to the defaults below.
type Options struct {
	StatusInterval time.Duration
	TankInterval   time.Duration
	RequestTimeout time.Duration
	Bind           BindOptions
	Metrics        *metrics.Metrics
	Log            *logger.Logger
}

const (
	DefaultStatusInterval        = 3 * time.Second
	DefaultTestingStatusInterval = 10 * time.Second
	DefaultTankInterval          = 600 * time.Second
	DefaultRequestTimeout        = 5 * time.Second
)

func (o Options) withDefaults() Options {
	if o.StatusInterval <= 0 {
		o.StatusInterval = DefaultStatusInterval
	}
	if o.TankInterval <= 0 {
		o.TankInterval = DefaultTankInterval
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	if o.Log == nil {
		o.Log = logger.Nop()
	}
	return o
}

type Service struct {
	Monitoring
	Commands
	Modes
	History
	Poller
}

// NewService wires the state store and device client into concrete services.
func NewService(repos *repository.Repository, dev Device, opts Options) *Service {
	opts = opts.withDefaults()
	endpoints := models.DefaultEndpoints()
	return &Service{
		Monitoring: NewMonitoringService(repos.State, endpoints, opts.Bind),
		Commands:   NewDispatcherService(dev, repos.State, repos.Journal, opts.Log, opts.Metrics),
		Modes:      NewModeService(repos.State, opts.Log),
		History:    NewHistoryService(repos.Journal),
		Poller:     NewPollerService(dev, repos.State, endpoints, opts),
	}
}
