package slots

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tutordesk/internal/api"
	"tutordesk/internal/bus"
	"tutordesk/internal/model"
)

// ValidationError is a client-side rejection; it never reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// API is the slice of the marketplace API the manager needs.
type API interface {
	ListSlots(ctx context.Context, tutorID int64) ([]model.TimeSlot, error)
	CreateSlot(ctx context.Context, req api.NewSlotRequest) ([]model.TimeSlot, error)
	UpdateSlot(ctx context.Context, id int64, available bool) (model.TimeSlot, error)
	DeleteSlot(ctx context.Context, id int64) error
}

// Manager holds the locally observed slot list for one owner and applies
// mutations confirm-then-apply: the server answers first, local state second.
// A rejected request leaves the prior observed state untouched.
type Manager struct {
	api    API
	bus    *bus.Bus
	logger *zap.Logger

	mu      sync.RWMutex
	ownerID int64
	slots   []model.TimeSlot
}

// NewManager creates a slot manager scoped to ownerID (0 = all slots).
func NewManager(a API, ownerID int64, b *bus.Bus, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{api: a, bus: b, ownerID: ownerID, logger: logger}
}

// SetOwner re-scopes the manager to another owner and clears the observed
// list. The next Refresh loads the new owner's slots.
func (m *Manager) SetOwner(id int64) {
	m.mu.Lock()
	m.ownerID = id
	m.slots = nil
	m.mu.Unlock()
}

// Owner returns the current scope (0 = all slots).
func (m *Manager) Owner() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ownerID
}

// Refresh replaces the local slot list with the server's.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.RLock()
	owner := m.ownerID
	m.mu.RUnlock()

	slots, err := m.api.ListSlots(ctx, owner)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	m.mu.Lock()
	m.slots = slots
	m.mu.Unlock()
	m.publishUpdated()
	return nil
}

// Slots returns a snapshot of the observed slot list.
func (m *Manager) Slots() []model.TimeSlot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.TimeSlot, len(m.slots))
	copy(out, m.slots)
	return out
}

// Toggle sets a slot's availability. The flip is applied locally only after
// the server confirms; on failure the prior observed state is retained and
// the error returned to the caller.
func (m *Manager) Toggle(ctx context.Context, slotID int64, available bool) error {
	updated, err := m.api.UpdateSlot(ctx, slotID, available)
	if err != nil {
		m.logger.Warn("slot toggle rejected", zap.Int64("slot_id", slotID), zap.Error(err))
		return err
	}

	m.mu.Lock()
	for i := range m.slots {
		if m.slots[i].ID == slotID {
			m.slots[i] = updated
			break
		}
	}
	m.mu.Unlock()
	m.publishUpdated()
	return nil
}

// Create validates the requested interval and submits it. The server may
// answer with one slot or several (recurring expansion); either way the new
// records are appended to the observed list.
func (m *Manager) Create(ctx context.Context, date, startTime, endTime string) ([]model.TimeSlot, error) {
	if date == "" {
		return nil, &ValidationError{Field: "date", Reason: "required"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	start, err := model.MinuteOfDay(startTime)
	if err != nil {
		return nil, &ValidationError{Field: "start_time", Reason: err.Error()}
	}
	end, err := model.MinuteOfDay(endTime)
	if err != nil {
		return nil, &ValidationError{Field: "end_time", Reason: err.Error()}
	}
	if end <= start {
		return nil, &ValidationError{Field: "end_time", Reason: "must be after start time"}
	}

	created, err := m.api.CreateSlot(ctx, api.NewSlotRequest{
		Date:      date,
		StartTime: model.FormatMinute(start),
		EndTime:   model.FormatMinute(end),
		Available: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	m.mu.Lock()
	m.slots = append(m.slots, created...)
	m.mu.Unlock()
	m.publishUpdated()
	return created, nil
}

// Delete removes a slot, confirm-then-apply like Toggle.
func (m *Manager) Delete(ctx context.Context, slotID int64) error {
	if err := m.api.DeleteSlot(ctx, slotID); err != nil {
		return err
	}
	m.mu.Lock()
	for i := range m.slots {
		if m.slots[i].ID == slotID {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.publishUpdated()
	return nil
}

// MarkBooked flips a slot to unavailable in local state after a confirmed
// booking. The booking service owns the call ordering.
func (m *Manager) MarkBooked(slotID int64) {
	m.mu.Lock()
	for i := range m.slots {
		if m.slots[i].ID == slotID {
			m.slots[i].Available = false
			break
		}
	}
	m.mu.Unlock()
	m.publishUpdated()
}

func (m *Manager) publishUpdated() {
	if m.bus != nil {
		m.bus.Publish(bus.Event{Kind: bus.KindSlotsUpdated, Timestamp: time.Now()})
	}
}
