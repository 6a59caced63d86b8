// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Catalog listings use fixed page sizes ([Fixed]); administrative listings
// let the caller choose a limit ([FromRequest]).
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/locallibrary/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage bounds the requested page so that Page*Limit cannot overflow.
	// Anything above it is past the end of every listing and answers 404.
	MaxPage = 1 << 20
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// InRange reports whether the page exists for a result set of size total.
//
// The first page always exists, even for an empty result set.
func (p Params) InRange(total int) bool {
	if p.Page <= 1 {
		return true
	}
	if p.Limit <= 0 {
		return false
	}
	return p.Page-1 < (total+p.Limit-1)/p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and [DefaultLimit].
// A limit above [MaxLimit] also falls back, and pages stop at [MaxPage].
func FromRequest(r *http.Request) Params {
	page := parsePage(r)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// Fixed parses only the "page" query parameter; the page size is set by the
// listing itself and cannot be overridden by the client.
func Fixed(r *http.Request, size int) Params {
	return Params{Page: parsePage(r), Limit: size}
}

// parsePage reads "page", falling back to [DefaultPage] when it is missing or
// not positive and capping it at [MaxPage].
func parsePage(r *http.Request) int {
	page := parseIntParam(r, "page", DefaultPage)
	if page < 1 {
		return DefaultPage
	}
	return min(page, MaxPage)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
