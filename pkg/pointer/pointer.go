// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for the optional fields of the
catalog model (due dates, borrowers, book references).

Key Functions:
  - To: Creates a pointer from a value literal.
  - Fallback: Dereferences a pointer, returning a fallback value if nil.
  - Nullable: Turns a pointer into a value or an untyped nil for SQL builders.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Nullable returns *p, or an untyped nil when p is nil.
//
// Query builders render an untyped nil as NULL, whereas a typed nil pointer
// may be dereferenced.
func Nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
