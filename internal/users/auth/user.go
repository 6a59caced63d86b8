// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the accounts that sign in to the catalog.

It defines the [User] entity, its permission grants and the login flow that
turns a username and password into a signed access token.

# Architecture

Permissions are stored per account and copied into the token at login, so
route guards decide from the token alone. A grant or revoke therefore takes
effect at the user's next login.
*/
package auth

import (
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// # Domain Entities

// User is a library account: a member who borrows books, or a librarian.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsSuperuser  bool       `json:"is_superuser"`
	IsActive     bool       `json:"is_active"`
	Permissions  []string   `json:"permissions"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Identity is what the access token asserts about the user.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		Permissions: user.Permissions,
		Superuser:   user.IsSuperuser,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPermission  = "permission"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
