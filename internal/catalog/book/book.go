/*
Package book manages the catalog's titles.

A [Book] belongs to at most one author and one language and carries a set of
genres. Deleting its author or language keeps the book with the reference
cleared; deleting the book keeps its copies with no book attached.
*/
package book

import (
	"strings"

	"github.com/taibuivan/locallibrary/internal/catalog/instance"
	"github.com/taibuivan/locallibrary/internal/catalog/taxonomy"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// Book is a title held by the library.
type Book struct {
	ID         int    `json:"id"`
	Title      string `json:"title"       validate:"required,max=200"`
	Summary    string `json:"summary"     validate:"required,max=1000"`
	ISBN       string `json:"isbn"        validate:"required,len=13"`
	AuthorID   *int   `json:"author_id"   validate:"required"`
	LanguageID *int   `json:"language_id" validate:"required"`
	GenreIDs   []int  `json:"genre_ids"   validate:"required,min=1"`

	// Read-only, filled in from the joined tables.
	AuthorName   *string           `json:"author,omitempty"`
	LanguageName *string           `json:"language,omitempty"`
	Genres       []*taxonomy.Genre `json:"genres"`
}

// DisplayGenre joins the names of the first few genres for list views.
func (b *Book) DisplayGenre() string {
	genres := b.Genres[:min(len(b.Genres), constants.DisplayGenreLimit)]
	return strings.Join(slice.Map(genres, func(genre *taxonomy.Genre) string { return genre.Name }), ", ")
}

// Listing is a book as shown in the catalog list.
type Listing struct {
	*Book
	DisplayGenre string `json:"display_genre"`
}

// Detail is a book together with every copy of it.
type Detail struct {
	*Book
	DisplayGenre string           `json:"display_genre"`
	Instances    []*instance.View `json:"instances"`
}

// Global field names for validation
const (
	FieldTitle    = "title"
	FieldISBN     = "isbn"
	FieldGenreIDs = "genre_ids"
)
