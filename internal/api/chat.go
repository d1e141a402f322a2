package api

import (
	"context"
	"fmt"
	"net/http"

	"tutordesk/internal/model"
)

// ListContacts returns the full contact list with unread counters. Callers
// replace their local list wholesale; the server is the source of truth.
func (c *Client) ListContacts(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := c.do(ctx, http.MethodGet, "/contacts/", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// UnreadCount returns the total number of unread messages across all
// conversations.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/messages/unread_count/", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// ListMessages returns the full message history for a conversation.
func (c *Client) ListMessages(ctx context.Context, contactID int64) ([]model.Message, error) {
	var msgs []model.Message
	endpoint := fmt.Sprintf("/messages/?contact_id=%d", contactID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// FetchNewMessages returns messages with id strictly greater than afterID.
func (c *Client) FetchNewMessages(ctx context.Context, contactID, afterID int64) ([]model.Message, error) {
	var msgs []model.Message
	endpoint := fmt.Sprintf("/messages/check/?contact_id=%d&last_id=%d", contactID, afterID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage submits a message; the server assigns its id and timestamp.
func (c *Client) SendMessage(ctx context.Context, receiverID int64, text string) (model.Message, error) {
	body := map[string]any{"receiver": receiverID, "text": text}
	var msg model.Message
	if err := c.do(ctx, http.MethodPost, "/messages/", body, &msg); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}
