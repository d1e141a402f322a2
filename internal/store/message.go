package store

import (
	"fmt"

	"tutordesk/internal/model"
)

// UpsertMessages stores a batch of messages for a conversation in a single
// transaction (idempotent on conversation + message id).
func (db *DB) UpsertMessages(contactID int64, msgs []model.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range msgs {
		if _, err := tx.Exec(`
			INSERT INTO messages (contact_id, msg_id, sender_id, receiver_id, body, timestamp, read)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(contact_id, msg_id) DO UPDATE SET
				read = excluded.read`,
			contactID, m.ID, m.SenderID, m.ReceiverID, m.Text, m.Timestamp, m.Read); err != nil {
			return fmt.Errorf("upsert message %d: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// ListMessages returns cached messages for a conversation in id order.
func (db *DB) ListMessages(contactID int64, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := db.Query(`
		SELECT msg_id, sender_id, receiver_id, body, timestamp, read
		FROM messages
		WHERE contact_id = ?
		ORDER BY msg_id ASC
		LIMIT ?`, contactID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Timestamp, &m.Read); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
