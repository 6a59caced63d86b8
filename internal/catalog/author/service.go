package author

import (
	"context"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/platform/validate"
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

func (service *Service) ListAuthors(context context.Context, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, limit, offset)
}

// GetAuthor returns the author along with every book credited to them.
func (service *Service) GetAuthor(context context.Context, id int) (*Detail, error) {
	author, err := service.repo.GetAuthor(context, id)
	if err != nil {
		return nil, err
	}

	books, err := service.repo.ListBooks(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Author: author, Books: books}, nil
}

func (service *Service) CreateAuthor(context context.Context, author *Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.Int("author_id", author.ID), slog.String("name", author.Name()))
	return nil
}

func (service *Service) UpdateAuthor(context context.Context, id int, author *Author) error {
	author.ID = id
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.Int("author_id", author.ID))
	return nil
}

func (service *Service) DeleteAuthor(context context.Context, id int) error {
	if err := service.repo.DeleteAuthor(context, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int("author_id", id))
	return nil
}

func validateAuthor(author *Author) error {
	validator := (&validate.Validator{}).Struct(author)

	if author.DateOfBirth != nil && author.DateOfDeath != nil {
		validator.Custom(FieldDateOfDeath, author.DateOfDeath.Before(*author.DateOfBirth), "Date of death precedes date of birth")
	}

	return validator.Err()
}
