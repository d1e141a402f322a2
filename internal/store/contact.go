package store

import (
	"fmt"

	"tutordesk/internal/model"
)

// ReplaceContacts swaps the cached contact list for the given one in a
// single transaction. The contact poll is a wholesale refresh, so the cache
// mirrors that instead of merging.
func (db *DB) ReplaceContacts(contacts []model.Contact) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM contacts`); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}
	for _, c := range contacts {
		if _, err := tx.Exec(`
			INSERT INTO contacts (id, name, role, last_message, unread)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, string(c.Role), c.LastMessage, c.Unread); err != nil {
			return fmt.Errorf("insert contact %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// ListContacts returns the cached contact list ordered by name.
func (db *DB) ListContacts() ([]model.Contact, error) {
	rows, err := db.Query(`
		SELECT id, name, role, last_message, unread
		FROM contacts
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		var role string
		if err := rows.Scan(&c.ID, &c.Name, &role, &c.LastMessage, &c.Unread); err != nil {
			return nil, err
		}
		c.Role = model.Role(role)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
