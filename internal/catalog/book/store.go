package book

import "context"

type Repository interface {
	// ListBooks pages through books ordered by title. A non-empty search
	// matches titles case-insensitively.
	ListBooks(context context.Context, search string, limit, offset int) ([]*Book, int, error)
	GetBook(context context.Context, id int) (*Book, error)
	// CreateBook and UpdateBook write the book row and its genre set atomically.
	CreateBook(context context.Context, b *Book) error
	UpdateBook(context context.Context, b *Book) error
	DeleteBook(context context.Context, id int) error
}
