// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/i18n"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.English},
		{"ru-RU,ru;q=0.9,en;q=0.8", language.Russian},
		{"en-GB", language.English},
		{"ja", language.English},
		{";;;", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Match(tt.header, language.English))
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "On loan", i18n.Translate(language.English, i18n.MsgStatusOnLoan))
	assert.Equal(t, "Выдана", i18n.Translate(language.Russian, i18n.MsgStatusOnLoan))

	// Unknown keys pass through untouched, including format verbs.
	assert.Equal(t, "Maximum 100% sure", i18n.Translate(language.Russian, "Maximum 100% sure"))

	assert.Equal(t, "Must be one of: d, o", i18n.Translate(language.English, i18n.MsgOneOf, "d, o"))
	assert.Equal(t, "Допустимые значения: d, o", i18n.Translate(language.Russian, i18n.MsgOneOf, "d, o"))
}

func TestT_UsesContextLocale(t *testing.T) {
	ctx := ctxutil.WithLocale(context.Background(), language.Russian)
	assert.Equal(t, "Неверная дата - обновление в прошлое", i18n.T(ctx, i18n.MsgRenewalInPast))
	assert.Equal(t, i18n.MsgRenewalInPast, i18n.T(context.Background(), i18n.MsgRenewalInPast))
}
