package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tutordesk/internal/model"
)

// NewSlotRequest is the payload for slot creation. Times are "HH:MM".
type NewSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// ListTutors returns discoverable tutor profiles.
func (c *Client) ListTutors(ctx context.Context) ([]model.Tutor, error) {
	var tutors []model.Tutor
	if err := c.do(ctx, http.MethodGet, "/tutors/", nil, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

// ListSlots returns all slots, or only those owned by tutorID when it is
// non-zero.
func (c *Client) ListSlots(ctx context.Context, tutorID int64) ([]model.TimeSlot, error) {
	endpoint := "/slots/"
	if tutorID != 0 {
		endpoint = fmt.Sprintf("/slots/?tutor_id=%d", tutorID)
	}
	var slots []model.TimeSlot
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateSlot creates one or more slots. Older API versions return the single
// created slot as an object; newer ones return a list when the request
// expands into recurring slots. Both shapes normalize to a list here.
func (c *Client) CreateSlot(ctx context.Context, req NewSlotRequest) ([]model.TimeSlot, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/slots/", req, &raw); err != nil {
		return nil, err
	}

	var list []model.TimeSlot
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single model.TimeSlot
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode created slot: %w", err)
	}
	return []model.TimeSlot{single}, nil
}

// UpdateSlot sets the availability flag on a slot and returns the server's
// view of it.
func (c *Client) UpdateSlot(ctx context.Context, id int64, available bool) (model.TimeSlot, error) {
	body := map[string]bool{"available": available}
	var slot model.TimeSlot
	endpoint := fmt.Sprintf("/slots/%d/", id)
	if err := c.do(ctx, http.MethodPut, endpoint, body, &slot); err != nil {
		return model.TimeSlot{}, err
	}
	return slot, nil
}

// DeleteSlot removes a slot.
func (c *Client) DeleteSlot(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/slots/%d/", id), nil, nil)
}
