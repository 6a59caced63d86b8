package author

import "context"

type Repository interface {
	ListAuthors(context context.Context, limit, offset int) ([]*Author, int, error)
	GetAuthor(context context.Context, id int) (*Author, error)
	ListBooks(context context.Context, authorID int) ([]*BookSummary, error)
	CreateAuthor(context context.Context, a *Author) error
	UpdateAuthor(context context.Context, a *Author) error
	// DeleteAuthor removes the row; books keep existing with no author.
	DeleteAuthor(context context.Context, id int) error
}
