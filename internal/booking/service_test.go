package booking

import (
	"context"
	"errors"
	"testing"

	"tutordesk/internal/api"
	"tutordesk/internal/model"
)

type fakeAPI struct {
	bookings  []model.Booking
	createErr error
	payErr    error

	nextID int64
}

func (f *fakeAPI) ListBookings(ctx context.Context) ([]model.Booking, error) {
	out := make([]model.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeAPI) CreateBooking(ctx context.Context, timeSlotID int64) (model.Booking, error) {
	if f.createErr != nil {
		return model.Booking{}, f.createErr
	}
	f.nextID++
	b := model.Booking{ID: f.nextID, TimeSlotID: timeSlotID, Paid: false}
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeAPI) ProcessPayment(ctx context.Context, bookingID int64) error {
	return f.payErr
}

func (f *fakeAPI) CreateCheckoutSession(ctx context.Context, bookingID int64, successURL, cancelURL string) (*api.CheckoutSession, error) {
	return &api.CheckoutSession{CheckoutURL: "https://pay.example/session/abc"}, nil
}

func (f *fakeAPI) AddRating(ctx context.Context, bookingID int64, score int) error {
	return nil
}

type fakeSlots struct {
	booked    []int64
	refreshes int
}

func (f *fakeSlots) MarkBooked(slotID int64) { f.booked = append(f.booked, slotID) }
func (f *fakeSlots) Refresh(ctx context.Context) error {
	f.refreshes++
	return nil
}

func TestBookFlipsSlotAfterConfirmation(t *testing.T) {
	f := &fakeAPI{}
	slots := &fakeSlots{}
	s := NewService(f, slots, nil)

	b, err := s.Book(context.Background(), 42)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if b.Paid {
		t.Error("fresh booking should be unpaid")
	}
	if b.TimeSlotID != 42 {
		t.Errorf("TimeSlotID = %d, want 42", b.TimeSlotID)
	}
	if len(slots.booked) != 1 || slots.booked[0] != 42 {
		t.Errorf("slot flips = %v, want [42]", slots.booked)
	}
	if got := s.Bookings(); len(got) != 1 {
		t.Errorf("cached bookings = %d, want 1", len(got))
	}
}

func TestBookFailureResyncsSlots(t *testing.T) {
	f := &fakeAPI{createErr: errors.New("slot taken")}
	slots := &fakeSlots{}
	s := NewService(f, slots, nil)

	if _, err := s.Book(context.Background(), 42); err == nil {
		t.Fatal("expected error")
	}
	if len(slots.booked) != 0 {
		t.Error("failed booking flipped the slot")
	}
	if slots.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", slots.refreshes)
	}
	if got := s.Bookings(); len(got) != 0 {
		t.Error("failed booking was cached")
	}
}

func TestBookThenPay(t *testing.T) {
	f := &fakeAPI{}
	s := NewService(f, &fakeSlots{}, nil)

	b, err := s.Book(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Pay(context.Background(), b.ID); err != nil {
		t.Fatalf("pay: %v", err)
	}
	got := s.Bookings()
	if len(got) != 1 || !got[0].Paid {
		t.Errorf("booking not marked paid: %+v", got)
	}
}

func TestPayFailureLeavesBookingUnpaid(t *testing.T) {
	f := &fakeAPI{}
	s := NewService(f, &fakeSlots{}, nil)

	b, _ := s.Book(context.Background(), 7)
	f.payErr = errors.New("card declined")
	if err := s.Pay(context.Background(), b.ID); err == nil {
		t.Fatal("expected error")
	}
	if got := s.Bookings(); got[0].Paid {
		t.Error("failed payment marked booking paid")
	}
}

func TestCheckoutReturnsSessionURL(t *testing.T) {
	s := NewService(&fakeAPI{}, nil, nil)
	url, err := s.Checkout(context.Background(), 1, "https://app/ok", "https://app/cancel")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://pay.example/session/abc" {
		t.Errorf("url = %q", url)
	}
}

func TestRefreshReplacesCache(t *testing.T) {
	f := &fakeAPI{bookings: []model.Booking{{ID: 1, Paid: true}, {ID: 2}}}
	s := NewService(f, nil, nil)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := s.Bookings(); len(got) != 2 {
		t.Errorf("bookings = %d, want 2", len(got))
	}
}
