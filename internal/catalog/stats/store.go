package stats

import "context"

type Repository interface {
	// Count fills every field of the summary except the visit count.
	Count(context context.Context) (*Summary, error)
}

// VisitCounter records one more visit and returns the new total.
type VisitCounter interface {
	Increment(context context.Context, visitor string) (int64, error)
}
