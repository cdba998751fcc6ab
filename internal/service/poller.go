package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"heating_panel/internal/device"
	"heating_panel/internal/logger"
	"heating_panel/internal/metrics"
	"heating_panel/internal/models"
	"heating_panel/internal/repository"
)

// PollerService keeps the state store in step with the device.
//
// The status loop and the tank loop tick independently. Every tick runs its
// fetches in new goroutines, so a slow response never delays the other loop
// or the next tick. Ordering per subsystem is enforced by the store's
// sequence numbers, not by serializing requests.
type PollerService struct {
	device    Device
	store     repository.StateStore
	endpoints []models.Endpoint
	log       *logger.Logger
	metrics   *metrics.Metrics

	statusEvery time.Duration
	tankEvery   time.Duration
	timeout     time.Duration

	mu        sync.Mutex
	listeners []Listener
	cancel    context.CancelFunc
	loops     sync.WaitGroup
	inflight  sync.WaitGroup
}

func NewPollerService(dev Device, store repository.StateStore, endpoints []models.Endpoint, opts Options) *PollerService {
	opts = opts.withDefaults()
	return &PollerService{
		device:      dev,
		store:       store,
		endpoints:   endpoints,
		log:         opts.Log,
		metrics:     opts.Metrics,
		statusEvery: opts.StatusInterval,
		tankEvery:   opts.TankInterval,
		timeout:     opts.RequestTimeout,
	}
}

// AddListener registers l to be called after every applied update.
func (p *PollerService) AddListener(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Start polls once immediately and then on both cadences until Stop or ctx is done.
// Calling Start on a running poller is a no-op.
func (p *PollerService) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loops.Add(2)
	p.mu.Unlock()

	go p.run(ctx, p.statusEvery, p.PollStatuses)
	go p.run(ctx, p.tankEvery, p.PollTank)

	p.log.Infow("poller_started", "status_interval", p.statusEvery, "tank_interval", p.tankEvery)
}

// Stop cancels the loops and waits for every in-flight fetch to return.
func (p *PollerService) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	p.loops.Wait()
	p.inflight.Wait()
	p.log.Infow("poller_stopped")
}

func (p *PollerService) run(ctx context.Context, every time.Duration, poll func(context.Context)) {
	defer p.loops.Done()

	p.spawn(ctx, poll)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.spawn(ctx, poll)
		}
	}
}

func (p *PollerService) spawn(ctx context.Context, poll func(context.Context)) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		poll(ctx)
	}()
}

// PollStatuses fetches every subsystem concurrently and returns once all three have finished.
func (p *PollerService) PollStatuses(ctx context.Context) {
	var wg sync.WaitGroup
	for _, ep := range p.endpoints {
		wg.Add(1)
		go func(ep models.Endpoint) {
			defer wg.Done()
			p.pollStatus(ctx, ep)
		}(ep)
	}
	wg.Wait()
}

func (p *PollerService) pollStatus(ctx context.Context, ep models.Endpoint) {
	seq := p.store.NextSeq(ep.Subsystem)

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rep, err := p.device.GetStatus(reqCtx, ep)
	if err != nil {
		p.pollFailed(ctx, metrics.KindStatus, err, "subsystem", ep.Subsystem, "seq", seq)
		return
	}
	p.metrics.Poll(metrics.KindStatus, metrics.ResultOK)

	if !p.store.ApplyStatus(ep.Subsystem, seq, rep) {
		p.metrics.Stale(ep.Subsystem.String())
		p.log.Debugw("poll_status_stale", "subsystem", ep.Subsystem, "seq", seq)
		return
	}
	p.log.Debugw("poll_status_applied", "subsystem", ep.Subsystem, "seq", seq, "on", rep.State)
	p.notify()
}

// PollTank fetches the tank reading and replaces the previous one.
func (p *PollerService) PollTank(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	r, err := p.device.GetTank(reqCtx)
	if err != nil {
		p.pollFailed(ctx, metrics.KindTank, err)
		return
	}
	p.metrics.Poll(metrics.KindTank, metrics.ResultOK)
	p.store.SetTank(r)
	p.log.Debugw("poll_tank_applied", "top", r.Top, "mid", r.Mid, "btm", r.Btm)
	p.notify()
}

// pollFailed records a failed fetch. Prior state is left as it was; the next tick retries.
func (p *PollerService) pollFailed(ctx context.Context, kind string, err error, kv ...interface{}) {
	if ctx.Err() != nil {
		// shutting down
		p.log.Debugw("poll_"+kind+"_canceled", kv...)
		return
	}
	result := metrics.ResultError
	if errors.Is(err, device.ErrMalformed) {
		result = metrics.ResultMalformed
	}
	p.metrics.Poll(kind, result)
	fields := append([]interface{}{"err", err, "result", result}, kv...)
	p.log.Warnw("poll_"+kind+"_failed", fields...)
}

func (p *PollerService) notify() {
	p.mu.Lock()
	listeners := make([]Listener, len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()
	for _, l := range listeners {
		l.StateChanged()
	}
}
