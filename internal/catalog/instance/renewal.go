package instance

import (
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/i18n"
	"github.com/taibuivan/locallibrary/pkg/date"
)

// DefaultRenewalDate is the date proposed on the renewal form.
func DefaultRenewalDate(today date.Date) date.Date {
	return today.AddDays(constants.DefaultLoanDays)
}

// MaxRenewalDate is the latest acceptable renewal date.
func MaxRenewalDate(today date.Date) date.Date {
	return today.AddDays(constants.MaxRenewalDays)
}

// ParseRenewalDate reads a submitted renewal date (YYYY-MM-DD).
func ParseRenewalDate(raw string) (date.Date, error) {
	if raw == "" {
		return date.Date{}, apperr.ValidationError(i18n.MsgValidation, apperr.FieldError{Field: FieldRenewalDate, Message: i18n.MsgFieldRequired})
	}

	proposed, err := date.Parse(raw)
	if err != nil {
		return date.Date{}, apperr.ValidationError(i18n.MsgValidation, apperr.FieldError{Field: FieldRenewalDate, Message: i18n.MsgInvalidDate})
	}
	return proposed, nil
}

// ValidateRenewal accepts proposed iff today <= proposed <= today+28.
func ValidateRenewal(today, proposed date.Date) error {
	return validateWindow(FieldRenewalDate, today, proposed)
}

func validateWindow(field string, today, proposed date.Date) error {
	switch {
	case proposed.Before(today):
		return apperr.ValidationError(i18n.MsgValidation, apperr.FieldError{Field: field, Message: i18n.MsgRenewalInPast})
	case proposed.After(MaxRenewalDate(today)):
		return apperr.ValidationError(i18n.MsgValidation, apperr.FieldError{Field: field, Message: i18n.MsgRenewalTooFar})
	}
	return nil
}
