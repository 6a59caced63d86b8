// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/pagination"
)

func TestFixed_IgnoresClientLimit(t *testing.T) {
	request := httptest.NewRequest("GET", "/books?page=3&limit=50", nil)

	params := pagination.Fixed(request, 5)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, 10, params.Offset())
}

func TestFixed_InvalidPageFallsBack(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-2"} {
		request := httptest.NewRequest("GET", "/books?page="+raw, nil)
		assert.Equal(t, 1, pagination.Fixed(request, 10).Page, raw)
	}
}

func TestFixed_HugePageIsCapped(t *testing.T) {
	request := httptest.NewRequest("GET", "/loans/borrowed?page=922337203685477582", nil)

	params := pagination.Fixed(request, 10)

	assert.Equal(t, pagination.MaxPage, params.Page)
	assert.Positive(t, params.Offset())
	assert.False(t, params.InRange(1))
}

func TestParams_OffsetSaturates(t *testing.T) {
	params := pagination.Params{Page: math.MaxInt, Limit: 100}
	assert.Equal(t, math.MaxInt, params.Offset())
}

func TestFromRequest_Clamping(t *testing.T) {
	request := httptest.NewRequest("GET", "/instances?limit=1000", nil)
	assert.Equal(t, pagination.DefaultLimit, pagination.FromRequest(request).Limit)
}

func TestParams_InRange(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int
		want  bool
	}{
		{"first_page_of_empty_set", 1, 0, true},
		{"last_partial_page", 3, 11, true},
		{"past_the_end", 4, 15, false},
		{"exactly_full_pages", 3, 10, false},
		{"page_near_max_int", math.MaxInt / 4, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Params{Page: tt.page, Limit: 5}
			assert.Equal(t, tt.want, params.InRange(tt.total))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 21)
	assert.Equal(t, 3, meta.TotalPages)
}
