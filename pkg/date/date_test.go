// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/pkg/date"
)

func TestDate_AddDaysRollsOver(t *testing.T) {
	assert.Equal(t, date.MustParse("2024-02-07"), date.MustParse("2024-01-10").AddDays(28))
	assert.Equal(t, date.MustParse("2024-03-01"), date.MustParse("2024-02-28").AddDays(2))
	assert.Equal(t, date.MustParse("2025-01-01"), date.MustParse("2024-12-31").AddDays(1))
}

func TestDate_Ordering(t *testing.T) {
	earlier := date.MustParse("2024-01-05")
	later := date.MustParse("2024-01-10")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, later.Before(later))
	assert.False(t, later.After(later))
}

func TestDate_ParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "2024-13-01", "10/01/2024", "2024-01-10T00:00:00Z"} {
		_, err := date.Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		DueBack *date.Date `json:"due_back"`
	}

	encoded, err := json.Marshal(payload{DueBack: &date.Date{Year: 2024, Month: time.January, Day: 20}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_back":"2024-01-20"}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"due_back":null}`), &decoded))
	assert.Nil(t, decoded.DueBack)

	require.NoError(t, json.Unmarshal([]byte(`{"due_back":"2024-02-10"}`), &decoded))
	require.NotNil(t, decoded.DueBack)
	assert.Equal(t, "2024-02-10", decoded.DueBack.String())

	assert.Error(t, json.Unmarshal([]byte(`{"due_back":"soon"}`), &decoded))
}

func TestDate_ScanAndValue(t *testing.T) {
	var d date.Date
	require.NoError(t, d.Scan(time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-20", d.String())

	value, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), value)

	value, err = date.Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}
