package sync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tutordesk/internal/api"
	"tutordesk/internal/bus"
	"tutordesk/internal/model"
	"tutordesk/internal/status"
)

// DefaultContactsInterval is the contact list poll cadence.
const DefaultContactsInterval = 5 * time.Second

// ContactAPI lists the user's conversation partners.
type ContactAPI interface {
	ListContacts(ctx context.Context) ([]model.Contact, error)
}

// ContactCache persists the contact list so a reopened client can render
// the last-seen contacts before the first poll lands. It may be nil.
type ContactCache interface {
	ReplaceContacts(contacts []model.Contact) error
	ListContacts() ([]model.Contact, error)
}

// ContactPoller refreshes the contact list wholesale on an interval. The
// snapshot is replaced, never merged; consumers re-resolve their selection
// by contact id after every update.
type ContactPoller struct {
	api    ContactAPI
	cache  ContactCache
	bus    *bus.Bus
	logger *zap.Logger

	interval time.Duration
	cancel   context.CancelFunc
	machine  *status.Machine

	mu       sync.RWMutex
	contacts []model.Contact
}

// NewContactPoller creates a contact poller. cache may be nil.
func NewContactPoller(api ContactAPI, cache ContactCache, b *bus.Bus, logger *zap.Logger) *ContactPoller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactPoller{
		api:      api,
		cache:    cache,
		bus:      b,
		logger:   logger,
		interval: DefaultContactsInterval,
	}
}

// SetInterval overrides the poll cadence. Call before Start.
func (p *ContactPoller) SetInterval(d time.Duration) {
	p.interval = d
}

// SetHealth makes this poller the connectivity heartbeat: a failed tick
// degrades the client state, the next successful one restores it.
func (p *ContactPoller) SetHealth(m *status.Machine) {
	p.machine = m
}

// Start serves the cached contact list immediately, then refreshes once and
// on every tick until the context is cancelled or Stop is called.
func (p *ContactPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.seedFromCache()

	go func() {
		p.refresh(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// seedFromCache publishes the last persisted contact list so the UI has
// something to show before the first poll completes. The first successful
// Refresh replaces it wholesale.
func (p *ContactPoller) seedFromCache() {
	if p.cache == nil {
		return
	}
	cached, err := p.cache.ListContacts()
	if err != nil {
		p.logger.Warn("contact cache read failed", zap.Error(err))
		return
	}
	if len(cached) == 0 {
		return
	}

	p.mu.Lock()
	if len(p.contacts) == 0 {
		p.contacts = cached
	}
	p.mu.Unlock()

	if p.bus != nil {
		p.bus.Publish(bus.Event{Kind: bus.KindContactsUpdated, Timestamp: time.Now()})
	}
}

// Stop stops the poll loop.
func (p *ContactPoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Refresh replaces the snapshot with the server's contact list.
func (p *ContactPoller) Refresh(ctx context.Context) error {
	contacts, err := p.api.ListContacts(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.contacts = contacts
	p.mu.Unlock()

	if p.cache != nil {
		if err := p.cache.ReplaceContacts(contacts); err != nil {
			p.logger.Warn("contact cache write failed", zap.Error(err))
		}
	}
	if p.bus != nil {
		p.bus.Publish(bus.Event{Kind: bus.KindContactsUpdated, Timestamp: time.Now()})
	}
	return nil
}

func (p *ContactPoller) refresh(ctx context.Context) {
	err := p.Refresh(ctx)
	if err != nil {
		p.logger.Warn("contact poll failed", zap.Error(err))
	}
	if p.machine == nil {
		return
	}
	switch {
	case api.IsAuthError(err):
		// The token was revoked or expired; degraded would keep retrying
		// with the same dead credentials.
		_ = p.machine.Transition(status.AuthRequired)
	case err != nil:
		if p.machine.Current() == status.Online {
			_ = p.machine.Transition(status.Degraded)
		}
	case p.machine.Current() == status.Degraded:
		_ = p.machine.Transition(status.Online)
	}
}

// Contacts returns a snapshot of the last observed contact list.
func (p *ContactPoller) Contacts() []model.Contact {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.Contact, len(p.contacts))
	copy(out, p.contacts)
	return out
}

// FindByID re-resolves a selection after a wholesale replace.
func (p *ContactPoller) FindByID(id int64) (model.Contact, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contact{}, false
}
