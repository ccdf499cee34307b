// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ffj-site/internal/model"
)

const contactMessageColumns = `id, name, email, subject, message, created_at`

func scanContactMessage(row rowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	return m, err
}

// ListContactMessages returns all messages, newest first.
func (q *Queries) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contactMessageColumns+` FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	messages := []model.ContactMessage{}
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetContactMessageByID returns a single message or sql.ErrNoRows.
func (q *Queries) GetContactMessageByID(ctx context.Context, id string) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contactMessageColumns+` FROM contact_messages WHERE id = ?`, id)
	return scanContactMessage(row)
}

// CreateContactMessageParams holds the public contact-form fields.
type CreateContactMessageParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// CreateContactMessage appends a contact message. Messages are write-once:
// no update or delete method exists.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	id := uuid.NewString()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, arg.Name, arg.Email, arg.Subject, arg.Message, time.Now().UTC())
	if err != nil {
		return model.ContactMessage{}, err
	}
	return q.GetContactMessageByID(ctx, id)
}
