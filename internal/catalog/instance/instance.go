/*
Package instance manages the borrowable copies of a book and their loans.

# Loan Lifecycle

A [BookInstance] is always in exactly one [Status]. New copies start in
maintenance; staff move them between states either by direct edit or
through the scripted workflows:

  - Renew: moves the due date within the allowed window; status unchanged.
  - Lend: assigns a borrower and a due date; status becomes on loan.
  - Return: clears borrower and due date; status becomes available.
  - Reserve: status becomes reserved.

Whether a copy is overdue is derived from its due date on every read and
never stored.
*/
package instance

import (
	"golang.org/x/text/language"

	"github.com/taibuivan/locallibrary/internal/platform/i18n"
	"github.com/taibuivan/locallibrary/pkg/date"
)

// # Loan Status

// Status is the single-character loan state persisted with a copy.
type Status string

const (
	StatusMaintenance Status = "d"
	StatusOnLoan      Status = "o"
	StatusAvailable   Status = "a"
	StatusReserved    Status = "r"
)

// DefaultStatus is the state of a freshly registered copy.
const DefaultStatus = StatusMaintenance

// Statuses lists every state in display order.
var Statuses = []Status{StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved}

var statusLabels = map[Status]string{
	StatusMaintenance: i18n.MsgStatusMaintenance,
	StatusOnLoan:      i18n.MsgStatusOnLoan,
	StatusAvailable:   i18n.MsgStatusAvailable,
	StatusReserved:    i18n.MsgStatusReserved,
}

// Label renders the status for humans in the given language.
func (s Status) Label(tag language.Tag) string {
	key, found := statusLabels[s]
	if !found {
		return string(s)
	}
	return i18n.Translate(tag, key)
}

// # Book Instance

// BookInstance is one physical copy of a book.
type BookInstance struct {
	ID           string     `json:"id"`
	BookID       *int       `json:"book_id"`
	BookTitle    *string    `json:"book_title,omitempty"`
	Imprint      string     `json:"imprint"`
	DueBack      *date.Date `json:"due_back"`
	BorrowerID   *string    `json:"borrower_id"`
	BorrowerName *string    `json:"borrower,omitempty"`
	Status       Status     `json:"status"`
}

// IsOverdue reports whether the copy has a due date strictly before today.
func (b *BookInstance) IsOverdue(today date.Date) bool {
	return b.DueBack != nil && b.DueBack.Before(today)
}

// Filter narrows the staff listing. Zero values mean "any".
type Filter struct {
	Statuses   []Status
	BookID     int
	BorrowerID string
}

// # Inputs

// CreateInput registers a new copy.
type CreateInput struct {
	BookID     *int       `json:"book_id"     validate:"required"`
	Imprint    string     `json:"imprint"     validate:"required,max=200"`
	DueBack    *date.Date `json:"due_back"`
	BorrowerID *string    `json:"borrower_id" validate:"omitempty,uuid"`
	Status     Status     `json:"status"      validate:"omitempty,oneof=d o a r"`
}

// Patch edits a copy directly. Absent fields are left unchanged; clearing
// borrower and due date is done by returning the copy.
type Patch struct {
	BookID     *int       `json:"book_id"`
	Imprint    *string    `json:"imprint"     validate:"omitempty,max=200"`
	DueBack    *date.Date `json:"due_back"`
	BorrowerID *string    `json:"borrower_id" validate:"omitempty,uuid"`
	Status     *Status    `json:"status"      validate:"omitempty,oneof=d o a r"`
}

// LendInput hands a copy to a borrower.
type LendInput struct {
	BorrowerID string     `json:"borrower_id" validate:"required,uuid"`
	DueBack    *date.Date `json:"due_back"`
}

// Global field names for validation
const (
	FieldRenewalDate = "renewal_date"
	FieldDueBack     = "due_back"
	FieldStatus      = "status"
	FieldBorrowerID  = "borrower_id"
)
