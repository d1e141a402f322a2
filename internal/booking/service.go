package booking

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tutordesk/internal/api"
	"tutordesk/internal/model"
)

// API is the booking and payment surface of the marketplace API.
type API interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	CreateBooking(ctx context.Context, timeSlotID int64) (model.Booking, error)
	ProcessPayment(ctx context.Context, bookingID int64) error
	CreateCheckoutSession(ctx context.Context, bookingID int64, successURL, cancelURL string) (*api.CheckoutSession, error)
	AddRating(ctx context.Context, bookingID int64, score int) error
}

// SlotView is the slot state the service flips after a confirmed booking and
// resyncs when the server disagrees.
type SlotView interface {
	MarkBooked(slotID int64)
	Refresh(ctx context.Context) error
}

// Service tracks the student's bookings. A booking starts unpaid; payment is
// a separate step against either the direct payment endpoint or a hosted
// checkout session.
type Service struct {
	api    API
	slots  SlotView
	logger *zap.Logger

	mu       sync.RWMutex
	bookings []model.Booking
}

func NewService(a API, slots SlotView, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: a, slots: slots, logger: logger}
}

// Refresh replaces the cached booking list with the server's.
func (s *Service) Refresh(ctx context.Context) error {
	bookings, err := s.api.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}
	s.mu.Lock()
	s.bookings = bookings
	s.mu.Unlock()
	return nil
}

// Bookings returns a snapshot of the cached booking list.
func (s *Service) Bookings() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Book reserves a slot. The slot flips to unavailable locally only after the
// server confirms the booking; if the request fails the slot list is
// re-fetched so a flip applied elsewhere cannot linger.
func (s *Service) Book(ctx context.Context, slotID int64) (model.Booking, error) {
	booked, err := s.api.CreateBooking(ctx, slotID)
	if err != nil {
		if s.slots != nil {
			if rerr := s.slots.Refresh(ctx); rerr != nil {
				s.logger.Warn("slot resync after failed booking", zap.Error(rerr))
			}
		}
		return model.Booking{}, fmt.Errorf("book slot %d: %w", slotID, err)
	}

	if s.slots != nil {
		s.slots.MarkBooked(slotID)
	}
	s.mu.Lock()
	s.bookings = append(s.bookings, booked)
	s.mu.Unlock()
	return booked, nil
}

// Pay settles a booking through the direct payment endpoint and marks the
// cached record paid.
func (s *Service) Pay(ctx context.Context, bookingID int64) error {
	if err := s.api.ProcessPayment(ctx, bookingID); err != nil {
		return fmt.Errorf("pay booking %d: %w", bookingID, err)
	}
	s.markPaid(bookingID)
	return nil
}

// Checkout creates a hosted checkout session and returns its URL. The
// booking stays unpaid until the next Refresh observes the settled state.
func (s *Service) Checkout(ctx context.Context, bookingID int64, successURL, cancelURL string) (string, error) {
	session, err := s.api.CreateCheckoutSession(ctx, bookingID, successURL, cancelURL)
	if err != nil {
		return "", fmt.Errorf("checkout booking %d: %w", bookingID, err)
	}
	return session.CheckoutURL, nil
}

// Rate records a 1..5 score for a completed booking.
func (s *Service) Rate(ctx context.Context, bookingID int64, score int) error {
	return s.api.AddRating(ctx, bookingID, score)
}

func (s *Service) markPaid(bookingID int64) {
	s.mu.Lock()
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			s.bookings[i].Paid = true
			break
		}
	}
	s.mu.Unlock()
}
