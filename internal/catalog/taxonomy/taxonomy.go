/*
Package taxonomy manages the reference data books are classified by.

# Core Responsibility

  - Genres: the many-to-many classification of a [Genre] set per book.
  - Languages: the single [Language] a book is written in.

Both are flat name lists. Reading them requires an authenticated caller;
adding or removing entries is staff work gated by catalog.can_mark_returned.
*/
package taxonomy

// Genre is a book category such as "Science Fiction" or "French Poetry".
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required,max=200"`
}

// Language is the natural language a book is written in.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required,max=200"`
}

// Global field names for validation
const (
	FieldName = "name"
)
