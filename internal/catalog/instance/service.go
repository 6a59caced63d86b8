package instance

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/locallibrary/internal/catalog/loanevent"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pointer"
	"github.com/taibuivan/locallibrary/pkg/slice"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the wall clock, typically to pin "today" in tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// Today is the calendar date the service evaluates due dates against.
func (service *Service) Today() date.Date {
	return date.Of(service.now().UTC())
}

// # Queries

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*BookInstance, int, error) {
	codes := slice.Map(Statuses, func(status Status) string { return string(status) })

	validator := &validate.Validator{}
	for _, status := range filter.Statuses {
		validator.OneOf(FieldStatus, string(status), codes...)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id string) (*BookInstance, error) {
	return service.repo.Get(context, id)
}

func (service *Service) ListByBook(context context.Context, bookID int) ([]*BookInstance, error) {
	return service.repo.ListByBook(context, bookID)
}

// ListMine returns the caller's copies on loan, soonest due first.
func (service *Service) ListMine(context context.Context, userID string, limit, offset int) ([]*BookInstance, int, error) {
	return service.repo.ListLoans(context, userID, limit, offset)
}

// ListBorrowed returns every copy on loan, soonest due first.
func (service *Service) ListBorrowed(context context.Context, limit, offset int) ([]*BookInstance, int, error) {
	return service.repo.ListLoans(context, "", limit, offset)
}

// # Administration

func (service *Service) Create(context context.Context, actorID string, input *CreateInput) (*BookInstance, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	instance := &BookInstance{
		ID:         uuid.New(),
		BookID:     input.BookID,
		Imprint:    input.Imprint,
		DueBack:    input.DueBack,
		BorrowerID: input.BorrowerID,
		Status:     input.Status,
	}
	if instance.Status == "" {
		instance.Status = DefaultStatus
	}

	event := service.event(instance.ID, loanevent.TypeCreated, actorID, loanevent.Payload{
		"status": string(instance.Status),
	})

	if err := service.repo.Create(context, instance, event); err != nil {
		return nil, err
	}

	service.logger.Info("book_instance_created",
		slog.String("instance_id", instance.ID),
		slog.String("status", string(instance.Status)),
	)

	// Re-read to pick up the joined book title.
	return service.repo.Get(context, instance.ID)
}

// Update applies a direct edit. Any status may move to any other status.
func (service *Service) Update(context context.Context, actorID, id string, patch *Patch) (*BookInstance, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	instance, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	previous := instance.Status
	if patch.BookID != nil {
		instance.BookID = patch.BookID
	}
	if patch.Imprint != nil {
		instance.Imprint = *patch.Imprint
	}
	if patch.DueBack != nil {
		instance.DueBack = patch.DueBack
	}
	if patch.BorrowerID != nil {
		instance.BorrowerID = patch.BorrowerID
	}
	if patch.Status != nil {
		instance.Status = *patch.Status
	}

	eventType, payload := loanevent.TypeUpdated, loanevent.Payload{}
	if instance.Status != previous {
		eventType = loanevent.TypeStatusChanged
		payload = loanevent.Payload{"from": string(previous), "to": string(instance.Status)}
	}

	if err := service.repo.Save(context, instance, service.event(id, eventType, actorID, payload)); err != nil {
		return nil, err
	}

	service.logger.Info("book_instance_updated",
		slog.String("instance_id", id),
		slog.String("event", string(eventType)),
	)

	return service.repo.Get(context, id)
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_instance_deleted", slog.String("instance_id", id))
	return nil
}

// # Loan Workflows

// RenewForm prepares the renewal page with the default proposed date.
func (service *Service) RenewForm(context context.Context, id string) (*BookInstance, date.Date, error) {
	instance, err := service.repo.Get(context, id)
	if err != nil {
		return nil, date.Date{}, err
	}
	return instance, DefaultRenewalDate(service.Today()), nil
}

// Renew moves the due date. The status is left untouched.
//
// The copy is looked up before the submitted date is examined, so an unknown
// copy is a 404 whatever was posted.
func (service *Service) Renew(context context.Context, actorID, id, rawDate string) error {
	instance, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	proposed, err := ParseRenewalDate(rawDate)
	if err != nil {
		return err
	}
	if err := ValidateRenewal(service.Today(), proposed); err != nil {
		return err
	}

	payload := loanevent.Payload{"to": proposed.String()}
	if instance.DueBack != nil {
		payload["from"] = instance.DueBack.String()
	}
	instance.DueBack = &proposed

	if err := service.repo.Save(context, instance, service.event(id, loanevent.TypeRenewed, actorID, payload)); err != nil {
		return err
	}

	service.logger.Info("book_instance_renewed",
		slog.String("instance_id", id),
		slog.String("due_back", proposed.String()),
	)
	return nil
}

// Lend hands the copy to a borrower until the given or default due date.
func (service *Service) Lend(context context.Context, actorID, id string, input *LendInput) (*BookInstance, error) {
	instance, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	today := service.Today()
	dueBack := pointer.Fallback(input.DueBack, today.AddDays(constants.DefaultLoanDays))
	if err := validateWindow(FieldDueBack, today, dueBack); err != nil {
		return nil, err
	}

	instance.Status = StatusOnLoan
	instance.BorrowerID = &input.BorrowerID
	instance.DueBack = &dueBack

	event := service.event(id, loanevent.TypeLent, actorID, loanevent.Payload{
		"borrower_id": input.BorrowerID,
		"due_back":    dueBack.String(),
	})
	if err := service.repo.Save(context, instance, event); err != nil {
		return nil, err
	}

	service.logger.Info("book_instance_lent",
		slog.String("instance_id", id),
		slog.String("borrower_id", input.BorrowerID),
	)
	return service.repo.Get(context, id)
}

// Return marks the copy available and forgets the loan.
func (service *Service) Return(context context.Context, actorID, id string) (*BookInstance, error) {
	instance, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	payload := loanevent.Payload{"from": string(instance.Status)}
	if instance.BorrowerID != nil {
		payload["borrower_id"] = *instance.BorrowerID
	}

	instance.Status = StatusAvailable
	instance.BorrowerID = nil
	instance.BorrowerName = nil
	instance.DueBack = nil

	if err := service.repo.Save(context, instance, service.event(id, loanevent.TypeReturned, actorID, payload)); err != nil {
		return nil, err
	}

	service.logger.Info("book_instance_returned", slog.String("instance_id", id))
	return instance, nil
}

// Reserve holds the copy for a future loan.
func (service *Service) Reserve(context context.Context, actorID, id string) (*BookInstance, error) {
	instance, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	payload := loanevent.Payload{"from": string(instance.Status)}
	instance.Status = StatusReserved

	if err := service.repo.Save(context, instance, service.event(id, loanevent.TypeReserved, actorID, payload)); err != nil {
		return nil, err
	}

	service.logger.Info("book_instance_reserved", slog.String("instance_id", id))
	return instance, nil
}

func (service *Service) event(instanceID string, eventType loanevent.Type, actorID string, payload loanevent.Payload) *loanevent.Event {
	return loanevent.New(instanceID, eventType, actorID, service.now(), payload)
}
