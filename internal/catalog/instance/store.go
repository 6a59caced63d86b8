package instance

import (
	"context"

	"github.com/taibuivan/locallibrary/internal/catalog/loanevent"
)

// Repository defines the data access contract for book copies.
//
// Writes take the loan event to append so both land in one transaction.
type Repository interface {
	// List returns copies matching filter ordered by due date.
	List(context context.Context, filter Filter, limit, offset int) ([]*BookInstance, int, error)

	// ListLoans returns copies on loan ordered by due date, restricted to one
	// borrower unless borrowerID is empty.
	ListLoans(context context.Context, borrowerID string, limit, offset int) ([]*BookInstance, int, error)

	// ListByBook returns every copy of a book.
	ListByBook(context context.Context, bookID int) ([]*BookInstance, error)

	Get(context context.Context, id string) (*BookInstance, error)
	Create(context context.Context, instance *BookInstance, event *loanevent.Event) error
	Save(context context.Context, instance *BookInstance, event *loanevent.Event) error
	Delete(context context.Context, id string) error
}
