package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tutordesk/internal/bus"
	"tutordesk/internal/model"
)

// ConversationState describes where the active conversation is in its
// sync lifecycle.
type ConversationState int

const (
	// StateIdle means no conversation is open.
	StateIdle ConversationState = iota
	// StateLoading means the initial history fetch is in flight.
	StateLoading
	// StateSynced means history is loaded and delta polling is live.
	StateSynced
)

func (s ConversationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// DefaultPollInterval is the delta poll cadence for the open conversation.
const DefaultPollInterval = 2 * time.Second

// ErrNoConversation is returned by Send when nothing is open.
var ErrNoConversation = errors.New("no open conversation")

// ChatAPI is the message surface of the marketplace API.
type ChatAPI interface {
	ListMessages(ctx context.Context, contactID int64) ([]model.Message, error)
	FetchNewMessages(ctx context.Context, contactID, afterID int64) ([]model.Message, error)
	SendMessage(ctx context.Context, receiverID int64, text string) (model.Message, error)
}

// MessageCache persists fetched messages for offline reads. It may be nil.
type MessageCache interface {
	UpsertMessages(contactID int64, msgs []model.Message) error
	ListMessages(contactID int64, limit int) ([]model.Message, error)
}

// Engine drives one conversation at a time: a full history fetch on open,
// then periodic delta fetches above a monotonic cursor. Every server
// response is checked against the generation counter taken when its request
// started, so a reply for a conversation the user has already left is
// discarded instead of bleeding into the new one.
type Engine struct {
	api    ChatAPI
	cache  MessageCache
	bus    *bus.Bus
	logger *zap.Logger

	pollInterval time.Duration
	cancel       context.CancelFunc

	mu         sync.Mutex
	state      ConversationState
	activeID   int64
	generation uint64
	cursor     int64
	seen       map[int64]struct{}
	messages   []model.Message
}

// NewEngine creates a sync engine. cache may be nil to disable persistence.
func NewEngine(api ChatAPI, cache MessageCache, b *bus.Bus, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		api:          api,
		cache:        cache,
		bus:          b,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		seen:         make(map[int64]struct{}),
	}
}

// SetPollInterval overrides the delta poll cadence. Call before Start.
func (e *Engine) SetPollInterval(d time.Duration) {
	e.pollInterval = d
}

// Start runs the delta poll loop until the context is cancelled or Stop is
// called. Polls are skipped while no conversation is synced.
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(e.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.PollOnce(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the poll loop.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

// Open switches the engine to contactID: resets cursor and history, serves
// any cached messages immediately, then replaces them with the server's
// full history. Opening another conversation mid-fetch invalidates the
// in-flight response.
func (e *Engine) Open(ctx context.Context, contactID int64) error {
	e.mu.Lock()
	e.activeID = contactID
	e.generation++
	gen := e.generation
	e.state = StateLoading
	e.cursor = 0
	e.seen = make(map[int64]struct{})
	e.messages = nil

	if e.cache != nil {
		if cached, err := e.cache.ListMessages(contactID, 0); err == nil && len(cached) > 0 {
			e.messages = cached
		}
	}
	e.mu.Unlock()

	e.publish(bus.KindChatOpened, contactID)

	history, err := e.api.ListMessages(ctx, contactID)
	if err != nil {
		// The conversation stays in Loading: cached history remains on
		// screen and reopening retries the fetch.
		return fmt.Errorf("load history for contact %d: %w", contactID, err)
	}

	e.mu.Lock()
	if e.generation != gen {
		e.mu.Unlock()
		e.logger.Debug("discarding stale history response", zap.Int64("contact_id", contactID))
		return nil
	}
	e.messages = nil
	e.seen = make(map[int64]struct{})
	accepted := e.applyLocked(history)
	e.state = StateSynced
	e.mu.Unlock()

	e.persist(contactID, accepted)
	e.publish(bus.KindChatMessages, contactID)
	return nil
}

// Close returns the engine to idle. In-flight responses for the previous
// conversation are discarded when they land.
func (e *Engine) Close() {
	e.mu.Lock()
	e.activeID = 0
	e.generation++
	e.state = StateIdle
	e.cursor = 0
	e.seen = make(map[int64]struct{})
	e.messages = nil
	e.mu.Unlock()
}

// PollOnce performs a single delta fetch for the open conversation. It is a
// no-op unless the conversation is synced.
func (e *Engine) PollOnce(ctx context.Context) {
	e.mu.Lock()
	if e.state != StateSynced || e.activeID == 0 {
		e.mu.Unlock()
		return
	}
	gen := e.generation
	contactID := e.activeID
	cursor := e.cursor
	e.mu.Unlock()

	batch, err := e.api.FetchNewMessages(ctx, contactID, cursor)
	if err != nil {
		e.logger.Warn("delta poll failed", zap.Int64("contact_id", contactID), zap.Error(err))
		return
	}
	if len(batch) == 0 {
		return
	}

	e.mu.Lock()
	if e.generation != gen {
		e.mu.Unlock()
		e.logger.Debug("discarding stale delta response", zap.Int64("contact_id", contactID))
		return
	}
	accepted := e.applyLocked(batch)
	e.mu.Unlock()

	e.persist(contactID, accepted)
	if len(accepted) > 0 {
		e.publish(bus.KindChatMessages, contactID)
	}
}

// Send delivers text to the open conversation. There is no optimistic
// insert: the message is appended only after the server echoes it back, and
// on failure the caller keeps the draft to retry verbatim.
func (e *Engine) Send(ctx context.Context, text string) (model.Message, error) {
	e.mu.Lock()
	contactID := e.activeID
	gen := e.generation
	e.mu.Unlock()

	if contactID == 0 {
		return model.Message{}, ErrNoConversation
	}

	sent, err := e.api.SendMessage(ctx, contactID, text)
	if err != nil {
		e.publish(bus.KindChatSendFailed, contactID)
		return model.Message{}, fmt.Errorf("send to contact %d: %w", contactID, err)
	}

	e.mu.Lock()
	var accepted []model.Message
	if e.generation == gen {
		accepted = e.applyLocked([]model.Message{sent})
	}
	e.mu.Unlock()

	e.persist(contactID, accepted)
	e.publish(bus.KindChatMessages, contactID)
	return sent, nil
}

// Messages returns a snapshot of the open conversation's history.
func (e *Engine) Messages() []model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// State reports the active conversation's sync state.
func (e *Engine) State() ConversationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ActiveContact returns the open conversation's contact id, 0 when idle.
func (e *Engine) ActiveContact() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeID
}

// Cursor returns the highest message id observed for the open conversation.
func (e *Engine) Cursor() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// applyLocked folds a batch into the history. The cursor advances to the
// batch maximum even when every message is a duplicate, and never moves
// backwards. Callers hold e.mu.
func (e *Engine) applyLocked(batch []model.Message) []model.Message {
	var accepted []model.Message
	for _, msg := range batch {
		if msg.ID > e.cursor {
			e.cursor = msg.ID
		}
		if _, dup := e.seen[msg.ID]; dup {
			continue
		}
		e.seen[msg.ID] = struct{}{}
		e.messages = append(e.messages, msg)
		accepted = append(accepted, msg)
	}
	return accepted
}

func (e *Engine) persist(contactID int64, msgs []model.Message) {
	if e.cache == nil || len(msgs) == 0 {
		return
	}
	if err := e.cache.UpsertMessages(contactID, msgs); err != nil {
		e.logger.Warn("message cache write failed", zap.Error(err))
	}
}

func (e *Engine) publish(kind string, contactID int64) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(bus.Event{
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   map[string]int64{"contact_id": contactID},
	})
}
