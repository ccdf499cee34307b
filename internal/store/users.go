// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/ffj-site/internal/model"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, role, created_at, updated_at`

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetUser returns the user with the given identity-provider subject id.
func (q *Queries) GetUser(ctx context.Context, id string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// UpsertUserParams carries the claims applied at every successful login.
type UpsertUserParams struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// UpsertUser inserts or updates a user keyed by the subject id. A new row gets
// the editor role; the role of an existing row is never touched here, so
// logins cannot demote admins.
func (q *Queries) UpsertUser(ctx context.Context, arg UpsertUserParams) (model.User, error) {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			profile_image_url = excluded.profile_image_url,
			updated_at = excluded.updated_at`,
		arg.ID, arg.Email, arg.FirstName, arg.LastName, arg.ProfileImageURL,
		model.RoleEditor, now, now)
	if err != nil {
		return model.User{}, fmt.Errorf("upserting user: %w", err)
	}
	return q.GetUser(ctx, arg.ID)
}

// SetUserRole changes a user's role. Used by seeding and operational tooling,
// not by any exposed route.
func (q *Queries) SetUserRole(ctx context.Context, id, role string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		role, time.Now().UTC(), id)
	return err
}
