package loanevent

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListByInstance returns a copy's history, newest first.
func (service *Service) ListByInstance(context context.Context, instanceID string, limit, offset int) ([]*Event, int, error) {
	return service.repo.ListByInstance(context, instanceID, limit, offset)
}
