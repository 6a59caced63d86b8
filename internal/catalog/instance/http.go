package instance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/i18n"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/pkg/convert"
	"github.com/taibuivan/locallibrary/pkg/pagination"
	querystr "github.com/taibuivan/locallibrary/pkg/query"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

// BorrowedPath is where a successful renewal sends the librarian.
const BorrowedPath = "/api/v1/loans/borrowed"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the copy administration and loan workflow endpoints.
// Every route requires catalog.can_mark_returned.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequirePermission(sec.PermCanMarkReturned))

	router.Get("/", handler.listInstances)
	router.Post("/", handler.createInstance)
	router.Get("/{id}", handler.getInstance)
	router.Patch("/{id}", handler.updateInstance)
	router.Delete("/{id}", handler.deleteInstance)

	router.Get("/{id}/renew", handler.renewForm)
	router.Post("/{id}/renew", handler.renewInstance)
	router.Post("/{id}/lend", handler.lendInstance)
	router.Post("/{id}/return", handler.returnInstance)
	router.Post("/{id}/reserve", handler.reserveInstance)
}

// RegisterLoanRoutes mounts the loan listings.
func (handler *Handler) RegisterLoanRoutes(router chi.Router) {
	router.Get("/mine", handler.listMine)
	router.With(middleware.RequirePermission(sec.PermCanMarkReturned)).Get("/borrowed", handler.listBorrowed)
}

// # Listings

func (handler *Handler) listInstances(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Statuses:   slice.Map(querystr.StringSlice(query.Get("status")), func(code string) Status { return Status(code) }),
		BookID:     convert.ToIntD(query.Get("book"), 0),
		BorrowerID: query.Get("borrower"),
	}

	instances, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, request, handler.views(request, instances), paginationParams, total)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.Fixed(request, constants.LoanPageSize)

	instances, total, err := handler.service.ListMine(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, request, handler.views(request, instances), paginationParams, total)
}

func (handler *Handler) listBorrowed(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.Fixed(request, constants.LoanPageSize)

	instances, total, err := handler.service.ListBorrowed(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, request, handler.views(request, instances), paginationParams, total)
}

// # Administration

func (handler *Handler) getInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Get(request.Context(), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.view(request, instance))
}

func (handler *Handler) createInstance(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Create(request.Context(), actor(request), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, handler.view(request, instance))
}

func (handler *Handler) updateInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Update(request.Context(), actor(request), instanceID, &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.view(request, instance))
}

func (handler *Handler) deleteInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), instanceID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Loan Workflows

func (handler *Handler) renewForm(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, proposed, err := handler.service.RenewForm(request.Context(), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	today := handler.service.Today()
	respond.OK(writer, RenewForm{
		Instance:    handler.view(request, instance),
		RenewalDate: proposed,
		MinDate:     today,
		MaxDate:     MaxRenewalDate(today),
		HelpText:    i18n.T(request.Context(), i18n.MsgRenewalHelp),
	})
}

// renewInput keeps the raw value so an invalid submission can be echoed.
type renewInput struct {
	RenewalDate string `json:"renewal_date"`
}

func (handler *Handler) renewInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input renewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Renew(request.Context(), actor(request), instanceID, input.RenewalDate); err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusBadRequest {
			respond.ErrorWithData(writer, request, err, input)
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.SeeOther(writer, request, BorrowedPath)
}

func (handler *Handler) lendInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LendInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Lend(request.Context(), actor(request), instanceID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.view(request, instance))
}

func (handler *Handler) returnInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Return(request.Context(), actor(request), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.view(request, instance))
}

func (handler *Handler) reserveInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Reserve(request.Context(), actor(request), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.view(request, instance))
}

// # Helpers

func (handler *Handler) view(request *http.Request, instance *BookInstance) *View {
	return NewView(ctxutil.GetLocale(request.Context()), handler.service.Today(), instance)
}

func (handler *Handler) views(request *http.Request, instances []*BookInstance) []*View {
	return NewViews(ctxutil.GetLocale(request.Context()), handler.service.Today(), instances)
}

// actor is the user recorded on loan events.
func actor(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
