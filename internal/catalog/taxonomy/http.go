package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterGenreRoutes mounts the genre endpoints. The router must already
// require authentication.
func (handler *Handler) RegisterGenreRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)

	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequirePermission(sec.PermCanMarkReturned))

		staffRoute.Post("/", handler.createGenre)
		staffRoute.Delete("/{id}", handler.deleteGenre)
	})
}

// RegisterLanguageRoutes mounts the language endpoints.
func (handler *Handler) RegisterLanguageRoutes(router chi.Router) {
	router.Get("/", handler.listLanguages)
	router.Get("/{id}", handler.getLanguage)

	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequirePermission(sec.PermCanMarkReturned))

		staffRoute.Post("/", handler.createLanguage)
		staffRoute.Delete("/{id}", handler.deleteLanguage)
	})
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntID(request, "id", "Genre")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.GetGenre(request.Context(), genreID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntID(request, "id", "Genre")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGenre(request.Context(), genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	languages, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, languages)
}

func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	languageID, err := requestutil.IntID(request, "id", "Language")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	language, err := handler.service.GetLanguage(request.Context(), languageID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, language)
}

func (handler *Handler) createLanguage(writer http.ResponseWriter, request *http.Request) {
	var input Language
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateLanguage(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteLanguage(writer http.ResponseWriter, request *http.Request) {
	languageID, err := requestutil.IntID(request, "id", "Language")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLanguage(request.Context(), languageID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
