package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the home summary. It is open to anonymous callers.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getSummary)
}

func (handler *Handler) getSummary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context(), visitor(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

// visitor identifies whose visit count to bump.
func visitor(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return "user:" + claims.UserID
	}
	return "ip:" + middleware.RealIP(request)
}
