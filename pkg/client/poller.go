package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is how often TodayPoller refreshes
const DefaultPollInterval = 60 * time.Second

// ErrPollerRunning is returned by Start on a poller that is already running
var ErrPollerRunning = errors.New("poller already running")

// CallSource is the part of Client the poller needs
type CallSource interface {
	Today(ctx context.Context) ([]ScheduledCall, error)
	Upcoming(ctx context.Context, limit int) ([]ScheduledCall, error)
}

// Snapshot is one poll result. Upcoming is only fetched when Today is empty.
type Snapshot struct {
	At       time.Time
	Today    []ScheduledCall
	Upcoming []ScheduledCall
	Err      error
}

// TodayPoller fetches today's calls on start and then every interval,
// handing each snapshot to a callback on the polling goroutine.
type TodayPoller struct {
	source   CallSource
	interval time.Duration
	onUpdate func(Snapshot)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// set while onUpdate runs on the polling goroutine
	inCallback atomic.Bool
}

// NewTodayPoller creates a poller; interval <= 0 uses DefaultPollInterval
func NewTodayPoller(source CallSource, interval time.Duration, onUpdate func(Snapshot)) *TodayPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &TodayPoller{
		source:   source,
		interval: interval,
		onUpdate: onUpdate,
	}
}

// Start begins polling until Stop is called or ctx is done
func (p *TodayPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrPollerRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx, p.done)
	return nil
}

// Stop ends polling and waits for an in-flight poll to finish. Called from
// the onUpdate callback it only cancels, since the polling goroutine is the
// caller and exits once the callback returns.
func (p *TodayPoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if p.inCallback.Load() {
		return
	}
	<-done
}

func (p *TodayPoller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *TodayPoller) poll(ctx context.Context) {
	snap := Snapshot{At: time.Now()}
	snap.Today, snap.Err = p.source.Today(ctx)
	if snap.Err == nil && len(snap.Today) == 0 {
		snap.Upcoming, snap.Err = p.source.Upcoming(ctx, 0)
	}

	// A poll interrupted by Stop is not reported
	if ctx.Err() != nil {
		return
	}
	if p.onUpdate != nil {
		p.inCallback.Store(true)
		defer p.inCallback.Store(false)
		p.onUpdate(snap)
	}
}
