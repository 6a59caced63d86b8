package taxonomy

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

func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(context)
}

func (service *Service) GetGenre(context context.Context, id int) (*Genre, error) {
	return service.repo.GetGenre(context, id)
}

func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	if err := validate.Struct(genre); err != nil {
		return err
	}

	if err := service.repo.CreateGenre(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.Int("genre_id", genre.ID), slog.String("name", genre.Name))
	return nil
}

func (service *Service) DeleteGenre(context context.Context, id int) error {
	if err := service.repo.DeleteGenre(context, id); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.Int("genre_id", id))
	return nil
}

func (service *Service) ListLanguages(context context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(context)
}

func (service *Service) GetLanguage(context context.Context, id int) (*Language, error) {
	return service.repo.GetLanguage(context, id)
}

func (service *Service) CreateLanguage(context context.Context, language *Language) error {
	if err := validate.Struct(language); err != nil {
		return err
	}

	if err := service.repo.CreateLanguage(context, language); err != nil {
		return err
	}

	service.logger.Info("language_created", slog.Int("language_id", language.ID), slog.String("name", language.Name))
	return nil
}

func (service *Service) DeleteLanguage(context context.Context, id int) error {
	if err := service.repo.DeleteLanguage(context, id); err != nil {
		return err
	}

	service.logger.Warn("language_deleted", slog.Int("language_id", id))
	return nil
}
