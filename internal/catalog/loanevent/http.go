package loanevent

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the history endpoint on the instance router, which
// already enforces the staff permission.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}/events", handler.listEvents)
}

func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUID(request, "id", "Book instance")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	events, total, err := handler.service.ListByInstance(request.Context(), instanceID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, request, events, paginationParams, total)
}
