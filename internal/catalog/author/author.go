package author

import "github.com/taibuivan/locallibrary/pkg/date"

// Author is a person credited with writing one or more books.
type Author struct {
	ID          int        `json:"id"`
	FirstName   string     `json:"first_name" validate:"required,max=100"`
	LastName    string     `json:"last_name"  validate:"required,max=100"`
	DateOfBirth *date.Date `json:"date_of_birth"`
	DateOfDeath *date.Date `json:"date_of_death"`
}

// Name renders the author the way catalog listings sort them.
func (a *Author) Name() string {
	return a.LastName + ", " + a.FirstName
}

// BookSummary is the slice of a book shown on its author's page.
type BookSummary struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Detail is an author together with the books credited to them.
type Detail struct {
	*Author
	Books []*BookSummary `json:"books"`
}

// Global field names for validation
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDateOfDeath = "date_of_death"
)
