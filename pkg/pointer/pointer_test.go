// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/pointer"
)

func TestTo(t *testing.T) {
	p := pointer.To(42)
	assert.Equal(t, 42, *p)
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "x", pointer.Fallback(nil, "x"))
	assert.Equal(t, "y", pointer.Fallback(pointer.To("y"), "x"))
}

func TestNullable(t *testing.T) {
	var missing *string
	assert.Nil(t, pointer.Nullable(missing))
	assert.Equal(t, "uuid", pointer.Nullable(pointer.To("uuid")))
}
