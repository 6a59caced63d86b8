package loanevent

import "context"

// Repository reads the loan history. Writes go through [Insert] so they can
// join the transaction that changes the copy.
type Repository interface {
	ListByInstance(context context.Context, instanceID string, limit, offset int) ([]*Event, int, error)
}
