package orchestrators

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sporthall/internal/domain/feedback"
)

// DefaultPollInterval is how often the unread count is refreshed while an admin is logged in.
const DefaultPollInterval = 30 * time.Second

// UnreadCounter reads one feedback listing; only its counters are used.
type UnreadCounter interface {
	List(ctx context.Context, archived bool) (feedback.Listing, error)
}

// UnreadPollers keeps one cancellable ticker per admin session.
// A poller ends on Stop, when its session expires, or on StopAll.
type UnreadPollers struct {
	counter  UnreadCounter
	interval time.Duration

	mu      sync.Mutex
	pollers map[string]*unreadPoller
	wg      sync.WaitGroup
	closed  bool
}

type unreadPoller struct {
	cancel context.CancelFunc

	mu     sync.Mutex
	unread int
	known  bool
}

// NewUnreadPollers creates an empty registry.
// PRE: interval > 0, or zero for DefaultPollInterval
func NewUnreadPollers(counter UnreadCounter, interval time.Duration) *UnreadPollers {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &UnreadPollers{
		counter:  counter,
		interval: interval,
		pollers:  make(map[string]*unreadPoller),
	}
}

// Start begins polling for token until the given session expiry. Starting an already running poller is a no-op.
// POST: the first fetch happens immediately
func (p *UnreadPollers) Start(token string, until time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, ok := p.pollers[token]; ok {
		return
	}

	ctx, cancel := context.WithDeadline(context.Background(), until)
	up := &unreadPoller{cancel: cancel}
	p.pollers[token] = up
	p.wg.Add(1)
	go p.run(ctx, token, up)
	slog.Debug("unread_poller_started", "interval", p.interval, "until", until)
}

func (p *UnreadPollers) run(ctx context.Context, token string, up *unreadPoller) {
	defer p.wg.Done()
	defer p.forget(token, up)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, up)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("unread_poller_stopped", "reason", context.Cause(ctx))
			return
		case <-ticker.C:
			p.poll(ctx, up)
		}
	}
}

func (p *UnreadPollers) poll(ctx context.Context, up *unreadPoller) {
	listing, err := p.counter.List(ctx, false)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("unread_poll_failed", "error", err)
		}
		return
	}
	up.mu.Lock()
	up.unread = listing.UnreadCount
	up.known = true
	up.mu.Unlock()
}

// forget removes the poller once its goroutine exits, unless a newer one took its slot.
func (p *UnreadPollers) forget(token string, up *unreadPoller) {
	up.cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pollers[token] == up {
		delete(p.pollers, token)
	}
}

// Stop cancels the poller for token. Unknown tokens are ignored.
func (p *UnreadPollers) Stop(token string) {
	p.mu.Lock()
	up, ok := p.pollers[token]
	if ok {
		delete(p.pollers, token)
	}
	p.mu.Unlock()
	if ok {
		up.cancel()
	}
}

// Unread returns the last polled unread count. ok is false before the first successful poll.
func (p *UnreadPollers) Unread(token string) (count int, ok bool) {
	p.mu.Lock()
	up, running := p.pollers[token]
	p.mu.Unlock()
	if !running {
		return 0, false
	}
	up.mu.Lock()
	defer up.mu.Unlock()
	return up.unread, up.known
}

// Running counts live pollers.
func (p *UnreadPollers) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pollers)
}

// StopAll cancels every poller and waits for their goroutines to exit. Later Starts are ignored.
func (p *UnreadPollers) StopAll() {
	p.mu.Lock()
	p.closed = true
	for token, up := range p.pollers {
		up.cancel()
		delete(p.pollers, token)
	}
	p.mu.Unlock()
	p.wg.Wait()
	slog.Info("unread_pollers_stopped")
}
