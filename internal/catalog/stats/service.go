package stats

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	visits VisitCounter
	logger *slog.Logger
}

func NewService(repo Repository, visits VisitCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		visits: visits,
		logger: logger,
	}
}

// Summary counts the catalog and records the visit. NumVisits is the number
// of earlier visits, so a first-time visitor sees zero.
//
// A failing counter is logged and reported as zero visits; the home page
// still renders.
func (service *Service) Summary(context context.Context, visitor string) (*Summary, error) {
	summary, err := service.repo.Count(context)
	if err != nil {
		return nil, err
	}

	visits, err := service.visits.Increment(context, visitor)
	if err != nil {
		service.logger.Warn("visit_count_unavailable", slog.String("error", err.Error()))
		return summary, nil
	}

	summary.NumVisits = visits - 1
	return summary, nil
}
