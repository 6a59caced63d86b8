package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/locallibrary/internal/catalog/instance"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
)

// InstanceLister supplies the copies shown on a book's page.
type InstanceLister interface {
	ListByBook(context context.Context, bookID int) ([]*instance.BookInstance, error)
	Today() date.Date
}

type Service struct {
	repo      Repository
	instances InstanceLister
	logger    *slog.Logger
}

func NewService(repo Repository, instances InstanceLister, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		instances: instances,
		logger:    logger,
	}
}

func (service *Service) ListBooks(context context.Context, search string, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, strings.TrimSpace(search), limit, offset)
}

// GetBook returns the book along with its copies.
func (service *Service) GetBook(context context.Context, id int) (*Book, []*instance.BookInstance, error) {
	book, err := service.repo.GetBook(context, id)
	if err != nil {
		return nil, nil, err
	}

	instances, err := service.instances.ListByBook(context, id)
	if err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

// Today is the date copies are checked for being overdue against.
func (service *Service) Today() date.Date {
	return service.instances.Today()
}

func (service *Service) CreateBook(context context.Context, book *Book) error {
	if err := validate.Struct(book); err != nil {
		return err
	}

	if err := service.repo.CreateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created", slog.Int("book_id", book.ID), slog.String("isbn", book.ISBN))
	return nil
}

func (service *Service) UpdateBook(context context.Context, id int, book *Book) error {
	book.ID = id
	if err := validate.Struct(book); err != nil {
		return err
	}

	if err := service.repo.UpdateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.Int("book_id", id))
	return nil
}

func (service *Service) DeleteBook(context context.Context, id int) error {
	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.Int("book_id", id))
	return nil
}
