package model

import (
	"context"
	"sync"
	"time"

	"tutordesk/internal/booking"
	"tutordesk/internal/calendar"
	"tutordesk/internal/model"
	"tutordesk/internal/slots"
	syncpkg "tutordesk/internal/sync"
)

// ViewModel aggregates the domain services behind the TUI and tracks
// view-side selections. Widgets read snapshots from it; they never touch
// the services directly.
type ViewModel struct {
	Engine   *syncpkg.Engine
	Contacts *syncpkg.ContactPoller
	Unread   *syncpkg.UnreadPoller
	Slots    *slots.Manager
	Bookings *booking.Service

	mu sync.RWMutex

	selectedContactID int64
	tutors            []model.Tutor
	selectedTutorID   int64
	calYear           int
	calMonth          time.Month
}

// TutorAPI lists tutors for the browse view.
type TutorAPI interface {
	ListTutors(ctx context.Context) ([]model.Tutor, error)
}

// NewViewModel creates a view model over the given services. The calendar
// starts on the current month.
func NewViewModel(engine *syncpkg.Engine, contacts *syncpkg.ContactPoller, unread *syncpkg.UnreadPoller, sm *slots.Manager, bs *booking.Service) *ViewModel {
	now := time.Now()
	return &ViewModel{
		Engine:   engine,
		Contacts: contacts,
		Unread:   unread,
		Slots:    sm,
		Bookings: bs,
		calYear:  now.Year(),
		calMonth: now.Month(),
	}
}

// SelectContact records the selected contact id. Selection survives list
// reorders because it is resolved by id, not by row.
func (vm *ViewModel) SelectContact(id int64) {
	vm.mu.Lock()
	vm.selectedContactID = id
	vm.mu.Unlock()
}

// SelectedContact re-resolves the selection against the latest contact
// snapshot. A contact that vanished server-side resolves to false.
func (vm *ViewModel) SelectedContact() (model.Contact, bool) {
	vm.mu.RLock()
	id := vm.selectedContactID
	vm.mu.RUnlock()
	if id == 0 {
		return model.Contact{}, false
	}
	return vm.Contacts.FindByID(id)
}

// LoadTutors fetches the tutor directory.
func (vm *ViewModel) LoadTutors(ctx context.Context, api TutorAPI) error {
	tutors, err := api.ListTutors(ctx)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.tutors = tutors
	vm.mu.Unlock()
	return nil
}

// Tutors returns a snapshot of the tutor directory.
func (vm *ViewModel) Tutors() []model.Tutor {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	out := make([]model.Tutor, len(vm.tutors))
	copy(out, vm.tutors)
	return out
}

// SelectTutor records the tutor whose calendar is being browsed.
func (vm *ViewModel) SelectTutor(id int64) {
	vm.mu.Lock()
	vm.selectedTutorID = id
	vm.mu.Unlock()
}

// SelectedTutor returns the tutor whose calendar is being browsed.
func (vm *ViewModel) SelectedTutor() (model.Tutor, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	for _, t := range vm.tutors {
		if t.ID == vm.selectedTutorID {
			return t, true
		}
	}
	return model.Tutor{}, false
}

// CalendarMonth projects the current slot snapshot onto the displayed month.
func (vm *ViewModel) CalendarMonth() calendar.Month {
	vm.mu.RLock()
	year, month := vm.calYear, vm.calMonth
	vm.mu.RUnlock()
	return calendar.BuildMonth(vm.Slots.Slots(), year, month)
}

// NextMonth advances the displayed month.
func (vm *ViewModel) NextMonth() {
	vm.mu.Lock()
	vm.calYear, vm.calMonth = calendar.NextMonth(vm.calYear, vm.calMonth)
	vm.mu.Unlock()
}

// PrevMonth rewinds the displayed month.
func (vm *ViewModel) PrevMonth() {
	vm.mu.Lock()
	vm.calYear, vm.calMonth = calendar.PrevMonth(vm.calYear, vm.calMonth)
	vm.mu.Unlock()
}
