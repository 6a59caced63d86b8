// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines the persistence contract for accounts and their grants.
type UserRepository interface {
	// Create persists a new account.
	//
	// # Returns
	//   - apperr.Conflict when the username is taken.
	Create(context context.Context, user *User) error

	// FindByID retrieves an account with its permissions.
	FindByID(context context.Context, id string) (*User, error)

	// FindByUsername retrieves an account with its permissions.
	FindByUsername(context context.Context, username string) (*User, error)

	// UpdateLastLogin stamps a successful login.
	UpdateLastLogin(context context.Context, id string, at time.Time) error

	// GrantPermission adds a grant. Granting twice is not an error.
	GrantPermission(context context.Context, id, permission string) error

	// RevokePermission removes a grant. Revoking a missing grant is not an error.
	RevokePermission(context context.Context, id, permission string) error
}
