package sync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tutordesk/internal/bus"
)

// DefaultUnreadInterval is the unread badge poll cadence.
const DefaultUnreadInterval = 5 * time.Second

// UnreadAPI reports the total unread message count.
type UnreadAPI interface {
	UnreadCount(ctx context.Context) (int, error)
}

// UnreadPoller keeps the global unread badge current. It publishes only
// when the count changes.
type UnreadPoller struct {
	api    UnreadAPI
	bus    *bus.Bus
	logger *zap.Logger

	interval time.Duration
	cancel   context.CancelFunc

	mu    sync.RWMutex
	count int
}

func NewUnreadPoller(api UnreadAPI, b *bus.Bus, logger *zap.Logger) *UnreadPoller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnreadPoller{
		api:      api,
		bus:      b,
		logger:   logger,
		interval: DefaultUnreadInterval,
	}
}

// SetInterval overrides the poll cadence. Call before Start.
func (p *UnreadPoller) SetInterval(d time.Duration) {
	p.interval = d
}

// Start polls once immediately, then on every tick until the context is
// cancelled or Stop is called.
func (p *UnreadPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	go func() {
		p.poll(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.poll(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the poll loop.
func (p *UnreadPoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Count returns the last observed unread total.
func (p *UnreadPoller) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.count
}

func (p *UnreadPoller) poll(ctx context.Context) {
	count, err := p.api.UnreadCount(ctx)
	if err != nil {
		p.logger.Warn("unread poll failed", zap.Error(err))
		return
	}

	p.mu.Lock()
	changed := count != p.count
	p.count = count
	p.mu.Unlock()

	if changed && p.bus != nil {
		p.bus.Publish(bus.Event{
			Kind:      bus.KindUnreadUpdated,
			Timestamp: time.Now(),
			Payload:   count,
		})
	}
}
