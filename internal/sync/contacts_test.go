package sync

import (
	"context"
	"errors"
	"testing"

	"tutordesk/internal/api"
	"tutordesk/internal/bus"
	"tutordesk/internal/model"
	"tutordesk/internal/status"
)

type fakeContactAPI struct {
	contacts []model.Contact
	err      error
}

func (f *fakeContactAPI) ListContacts(ctx context.Context) ([]model.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Contact(nil), f.contacts...), nil
}

type fakeContactCache struct {
	stored []model.Contact
	err    error
}

func (f *fakeContactCache) ReplaceContacts(contacts []model.Contact) error {
	f.stored = append([]model.Contact(nil), contacts...)
	return nil
}

func (f *fakeContactCache) ListContacts() ([]model.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Contact(nil), f.stored...), nil
}

type fakeUnreadAPI struct {
	count int
	err   error
}

func (f *fakeUnreadAPI) UnreadCount(ctx context.Context) (int, error) {
	return f.count, f.err
}

func TestContactRefreshReplacesWholesale(t *testing.T) {
	f := &fakeContactAPI{contacts: []model.Contact{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}}}
	p := NewContactPoller(f, nil, nil, nil)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Contacts()); got != 2 {
		t.Fatalf("contacts = %d, want 2", got)
	}

	// Contact 1 disappears server-side; the replace must not keep it.
	f.contacts = []model.Contact{{ID: 2, Name: "Bo"}}
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := p.Contacts()
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("contacts = %+v", got)
	}
}

func TestCachedContactsServedBeforeFirstPoll(t *testing.T) {
	cache := &fakeContactCache{stored: []model.Contact{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}}}
	b := bus.New()
	ch, unsub := b.Subscribe("contacts.", 8)
	defer unsub()

	// The network is down; only the cache can fill the list.
	p := NewContactPoller(&fakeContactAPI{err: errors.New("offline")}, cache, b, nil)
	p.Start(context.Background())
	defer p.Stop()

	got := p.Contacts()
	if len(got) != 2 || got[0].ID != 1 {
		t.Fatalf("contacts = %+v, want cached list", got)
	}
	select {
	case evt := <-ch:
		if evt.Kind != bus.KindContactsUpdated {
			t.Errorf("event kind = %q, want %q", evt.Kind, bus.KindContactsUpdated)
		}
	default:
		t.Error("no contacts event published for the cached snapshot")
	}
}

func TestContactSelectionReresolvedByID(t *testing.T) {
	f := &fakeContactAPI{contacts: []model.Contact{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}}}
	p := NewContactPoller(f, nil, nil, nil)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	// The list reorders; id 2 is now first. Selection follows the id, not
	// the list position.
	f.contacts = []model.Contact{{ID: 2, Name: "Bo"}, {ID: 1, Name: "Ana"}}
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	sel, ok := p.FindByID(1)
	if !ok || sel.Name != "Ana" {
		t.Errorf("FindByID(1) = %+v, %v", sel, ok)
	}
	if _, ok := p.FindByID(99); ok {
		t.Error("FindByID(99) resolved a missing contact")
	}
}

func TestContactRefreshErrorKeepsSnapshot(t *testing.T) {
	f := &fakeContactAPI{contacts: []model.Contact{{ID: 1}}}
	p := NewContactPoller(f, nil, nil, nil)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.err = errors.New("offline")
	if err := p.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := len(p.Contacts()); got != 1 {
		t.Errorf("failed refresh dropped the snapshot: %d contacts", got)
	}
}

func TestContactPollerDrivesHealth(t *testing.T) {
	f := &fakeContactAPI{contacts: []model.Contact{{ID: 1}}}
	m := status.NewMachine(nil)
	if err := m.Transition(status.Online); err != nil {
		t.Fatal(err)
	}

	p := NewContactPoller(f, nil, nil, nil)
	p.SetHealth(m)

	f.err = errors.New("offline")
	p.refresh(context.Background())
	if got := m.Current(); got != status.Degraded {
		t.Fatalf("state = %s, want DEGRADED", got)
	}

	f.err = nil
	p.refresh(context.Background())
	if got := m.Current(); got != status.Online {
		t.Fatalf("state = %s, want ONLINE", got)
	}
}

func TestContactPollerAuthFailureRequiresLogin(t *testing.T) {
	f := &fakeContactAPI{contacts: []model.Contact{{ID: 1}}}
	m := status.NewMachine(nil)
	if err := m.Transition(status.Online); err != nil {
		t.Fatal(err)
	}

	p := NewContactPoller(f, nil, nil, nil)
	p.SetHealth(m)

	// A revoked token is not a connectivity blip; retrying cannot fix it.
	f.err = &api.RequestError{Status: 401}
	p.refresh(context.Background())
	if got := m.Current(); got != status.AuthRequired {
		t.Fatalf("state = %s, want AUTH_REQUIRED", got)
	}
}

func TestUnreadPublishesOnlyOnChange(t *testing.T) {
	f := &fakeUnreadAPI{count: 3}
	b := bus.New()
	ch, unsub := b.Subscribe("contacts.", 8)
	defer unsub()

	p := NewUnreadPoller(f, b, nil)
	p.poll(context.Background())
	p.poll(context.Background())
	f.count = 5
	p.poll(context.Background())

	if got := p.Count(); got != 5 {
		t.Errorf("count = %d, want 5", got)
	}

	var events int
	for {
		select {
		case <-ch:
			events++
			continue
		default:
		}
		break
	}
	if events != 2 {
		t.Errorf("published %d events, want 2 (initial and changed)", events)
	}
}

func TestUnreadErrorKeepsLastCount(t *testing.T) {
	f := &fakeUnreadAPI{count: 4}
	p := NewUnreadPoller(f, nil, nil)
	p.poll(context.Background())

	f.err = errors.New("offline")
	p.poll(context.Background())
	if got := p.Count(); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}
