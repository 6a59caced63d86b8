// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n localizes the user-facing strings of the catalog.

Loan status codes are persisted as single characters; their display labels
and the renewal form messages are looked up in a golang.org/x/text message
catalog for the language negotiated from the Accept-Language header.

English strings double as message keys, so an untranslated key renders as
its English text.
*/
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
)

// # Message Keys

const (
	MsgStatusMaintenance = "Maintenance"
	MsgStatusOnLoan      = "On loan"
	MsgStatusAvailable   = "Available"
	MsgStatusReserved    = "Reserved"

	MsgRenewalInPast  = "Invalid date - renewal in past"
	MsgRenewalTooFar  = "Invalid date - renewal more than 4 weeks ahead"
	MsgRenewalHelp    = "Enter a date between now and 4 weeks (default 3)."
	MsgInvalidDate    = "Enter a valid date."
	MsgFieldRequired  = "This field is required"
	MsgValidation     = "Validation failed"
	MsgInvalidPayload = "Invalid JSON payload"

	// MsgOneOf takes the comma-separated list of allowed values.
	MsgOneOf = "Must be one of: %s"
)

// Supported lists the languages with a full translation. The first entry is
// the fallback.
var Supported = []language.Tag{language.English, language.Russian}

var (
	matcher  = language.NewMatcher(Supported)
	messages = buildCatalog()
	known    = map[string]bool{}
)

// translations maps every key to its Russian rendering.
var translations = map[string]string{
	MsgStatusMaintenance: "На содержании",
	MsgStatusOnLoan:      "Выдана",
	MsgStatusAvailable:   "Доступна",
	MsgStatusReserved:    "Зарезервирована",
	MsgRenewalInPast:     "Неверная дата - обновление в прошлое",
	MsgRenewalTooFar:     "Неверная дата - обновление более чем на 4 недели",
	MsgRenewalHelp:       "Введите дату между сегодня и 4 неделями (по умолчанию 3).",
	MsgInvalidDate:       "Введите правильную дату.",
	MsgFieldRequired:     "Обязательное поле",
	MsgValidation:        "Ошибка проверки данных",
	MsgInvalidPayload:    "Некорректный JSON",
	MsgOneOf:             "Допустимые значения: %s",
}

func buildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, russian := range translations {
		_ = builder.SetString(language.English, key, key)
		_ = builder.SetString(language.Russian, key, russian)
	}
	return builder
}

func init() {
	for key := range translations {
		known[key] = true
	}
}

// # Negotiation

// Match picks the best supported language for an Accept-Language header.
// An empty or unparsable header yields fallback.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported[index]
}

// Parse resolves a configured locale name ("en", "ru") to a supported tag.
func Parse(name string) language.Tag {
	return Match(name, language.English)
}

// # Lookup

// Printer returns a message printer bound to the catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// Translate renders key in tag's language, substituting args into its verbs.
// Unknown keys without args are returned as-is.
func Translate(tag language.Tag, key string, args ...any) string {
	if !known[key] && len(args) == 0 {
		return key
	}
	return Printer(tag).Sprintf(key, args...)
}

// T renders key in the language negotiated for the request in ctx.
func T(ctx context.Context, key string, args ...any) string {
	return Translate(ctxutil.GetLocale(ctx), key, args...)
}
