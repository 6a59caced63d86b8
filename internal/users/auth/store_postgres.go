// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userSelect reads an account and folds its grants into one array column.
var userSelect = fmt.Sprintf(`
	SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s,
	       ARRAY(SELECT p.%s FROM %s p WHERE p.%s = a.%s ORDER BY p.%s)
	FROM %s a
`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.Password, schema.UserAccount.FirstName, schema.UserAccount.LastName,
	schema.UserAccount.IsSuperuser, schema.UserAccount.IsActive, schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	schema.UserPermission.Permission, schema.UserPermission.Table,
	schema.UserPermission.AccountID, schema.UserAccount.ID, schema.UserPermission.Permission,
	schema.UserAccount.Table,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.IsSuperuser, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
		&user.Permissions,
	)
	return user, err
}

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate username, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.FirstName, schema.UserAccount.LastName,
		schema.UserAccount.IsSuperuser, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.IsSuperuser, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	return dberr.Wrap(err, "create_user")
}

// FindByID retrieves a user by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE a.%s = $1`, userSelect, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "find_user_by_id", "User")
	}
	return user, nil
}

// FindByUsername retrieves a user by their unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`%s WHERE a.%s = $1`, userSelect, schema.UserAccount.Username)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.NotFound(err, "find_user_by_username", "User")
	}
	return user, nil
}

func (repository *PostgresUserRepository) UpdateLastLogin(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID,
	)

	cmd, err := repository.pool.Exec(context, query, id, at)
	if err != nil {
		return dberr.Wrap(err, "update_last_login")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresUserRepository) GrantPermission(context context.Context, id, permission string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.UserPermission.Table, schema.UserPermission.AccountID, schema.UserPermission.Permission,
		schema.UserPermission.AccountID, schema.UserPermission.Permission,
	)

	_, err := repository.pool.Exec(context, query, id, permission)
	return dberr.Wrap(err, "grant_permission")
}

func (repository *PostgresUserRepository) RevokePermission(context context.Context, id, permission string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserPermission.Table, schema.UserPermission.AccountID, schema.UserPermission.Permission,
	)

	_, err := repository.pool.Exec(context, query, id, permission)
	return dberr.Wrap(err, "revoke_permission")
}
