package api

import (
	"context"
	"fmt"
	"net/http"

	"tutordesk/internal/model"
)

// ListBookings returns the caller's bookings.
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking reserves a slot for the authenticated student.
func (c *Client) CreateBooking(ctx context.Context, timeSlotID int64) (model.Booking, error) {
	body := map[string]int64{"time_slot": timeSlotID}
	var b model.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings/", body, &b); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// ProcessPayment marks a booking as paid through the direct payment endpoint.
func (c *Client) ProcessPayment(ctx context.Context, bookingID int64) error {
	body := map[string]int64{"booking_id": bookingID}
	return c.do(ctx, http.MethodPost, "/payment/", body, nil)
}

// CheckoutSession is the provider-hosted checkout created for a booking.
type CheckoutSession struct {
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckoutSession asks the server to create a provider checkout
// session; the caller redirects the user to the returned URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, bookingID int64, successURL, cancelURL string) (*CheckoutSession, error) {
	body := map[string]any{
		"booking_id":  bookingID,
		"success_url": successURL,
		"cancel_url":  cancelURL,
	}
	var sess CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/payment/checkout/", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// AddRating records a 1-5 score against a completed booking.
func (c *Client) AddRating(ctx context.Context, bookingID int64, score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("rating score %d out of range [1,5]", score)
	}
	body := map[string]int64{"booking_id": bookingID, "score": int64(score)}
	return c.do(ctx, http.MethodPost, "/rating/", body, nil)
}
