// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/locallibrary/internal/platform/apperr"

// # Permissions

// Permission is a named capability granted to an account ("app.codename").
type Permission string

const (
	// PermCanMarkReturned gates loan administration and catalog edits.
	PermCanMarkReturned Permission = "catalog.can_mark_returned"
)

// KnownPermissions lists every permission the service recognises.
var KnownPermissions = []Permission{PermCanMarkReturned}

// # Authorization

// Authenticated fails with 401 when there is no caller.
func Authenticated(claims *AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

// Authorize decides whether the caller may use the given capability.
//
// A missing caller yields 401; a caller lacking the grant yields 403.
func Authorize(claims *AuthClaims, permission Permission) error {
	if err := Authenticated(claims); err != nil {
		return err
	}
	if !claims.Has(permission) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}
