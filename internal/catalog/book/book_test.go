package book_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/catalog/book"
	"github.com/taibuivan/locallibrary/internal/catalog/instance"
	"github.com/taibuivan/locallibrary/internal/catalog/taxonomy"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListBooks(ctx context.Context, search string, limit, offset int) ([]*book.Book, int, error) {
	args := m.Called(ctx, search, limit, offset)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Int(1), args.Error(2)
}

func (m *mockRepository) GetBook(ctx context.Context, id int) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockRepository) CreateBook(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) UpdateBook(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) DeleteBook(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type stubInstances struct {
	copies []*instance.BookInstance
}

func (s *stubInstances) ListByBook(_ context.Context, _ int) ([]*instance.BookInstance, error) {
	return s.copies, nil
}

func (s *stubInstances) Today() date.Date {
	return date.Of(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
}

func mount(repo *mockRepository, copies ...*instance.BookInstance) func(chi.Router) {
	service := book.NewService(repo, &stubInstances{copies: copies}, testutil.Logger())
	handler := book.NewHandler(service)
	return func(router chi.Router) {
		router.Route("/books", handler.RegisterRoutes)
	}
}

func validBook() map[string]any {
	return map[string]any{
		"title":       "The Left Hand of Darkness",
		"summary":     "An envoy visits the planet Gethen.",
		"isbn":        "9780441478125",
		"author_id":   1,
		"language_id": 1,
		"genre_ids":   []int{2, 3},
	}
}

/*
TestDisplayGenre verifies that at most six genre names are shown.
*/
func TestDisplayGenre(t *testing.T) {
	names := []string{"Fantasy", "Horror", "Mystery", "Poetry", "Romance", "Satire", "Western"}

	b := &book.Book{}
	assert.Equal(t, "", b.DisplayGenre())

	for i, name := range names {
		b.Genres = append(b.Genres, &taxonomy.Genre{ID: i + 1, Name: name})
	}
	assert.Equal(t, "Fantasy, Horror, Mystery, Poetry, Romance, Satire", b.DisplayGenre())

	b.Genres = b.Genres[:2]
	assert.Equal(t, "Fantasy, Horror", b.DisplayGenre())
}

/*
TestCreateBook_Validation covers the ISBN length and the required references.
*/
func TestCreateBook_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *book.Book)
		field  string
	}{
		{"short isbn", func(b *book.Book) { b.ISBN = "978044147812" }, book.FieldISBN},
		{"long title", func(b *book.Book) { b.Title = string(make([]byte, 201)) }, book.FieldTitle},
		{"no genres", func(b *book.Book) { b.GenreIDs = []int{} }, book.FieldGenreIDs},
		{"no author", func(b *book.Book) { b.AuthorID = nil }, "author_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &book.Book{
				Title:      "Dune",
				Summary:    "Spice.",
				ISBN:       "9780441013593",
				AuthorID:   pointer.To(1),
				LanguageID: pointer.To(1),
				GenreIDs:   []int{1},
			}
			tt.mutate(b)

			appErr := apperr.As(book.NewService(&mockRepository{}, &stubInstances{}, testutil.Logger()).CreateBook(context.Background(), b))
			require.NotNil(t, appErr)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

/*
TestBookRoutes_Permissions verifies that members may read but only staff may
edit the catalog.
*/
func TestBookRoutes_Permissions(t *testing.T) {
	repo := &mockRepository{}
	repo.On("CreateBook", mock.Anything, mock.Anything).Return(nil)
	repo.On("DeleteBook", mock.Anything, 7).Return(nil)

	tests := []struct {
		name   string
		call   testutil.Request
		status int
	}{
		{"member create", testutil.Request{Method: http.MethodPost, Path: "/books", Body: validBook(), Claims: testutil.Member()}, http.StatusForbidden},
		{"member delete", testutil.Request{Method: http.MethodDelete, Path: "/books/7", Claims: testutil.Member()}, http.StatusForbidden},
		{"staff create", testutil.Request{Method: http.MethodPost, Path: "/books", Body: validBook(), Claims: testutil.Staff()}, http.StatusCreated},
		{"staff delete", testutil.Request{Method: http.MethodDelete, Path: "/books/7", Claims: testutil.Staff()}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := testutil.Serve(t, mount(repo), tt.call)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}

	repo.AssertNumberOfCalls(t, "CreateBook", 1)
	repo.AssertNumberOfCalls(t, "DeleteBook", 1)
}

/*
TestListBooks_SearchAndPaging verifies the title search and the fixed page
size of five.
*/
func TestListBooks_SearchAndPaging(t *testing.T) {
	repo := &mockRepository{}
	repo.On("ListBooks", mock.Anything, "dark", 5, 0).Return([]*book.Book{
		{ID: 1, Title: "The Left Hand of Darkness", Genres: []*taxonomy.Genre{{ID: 2, Name: "Science Fiction"}}},
	}, 1, nil)
	repo.On("ListBooks", mock.Anything, "", 5, 10).Return([]*book.Book{}, 6, nil)

	recorder := testutil.Serve(t, mount(repo), testutil.Request{Method: http.MethodGet, Path: "/books?q=+dark+", Claims: testutil.Member()})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := testutil.Decode(t, recorder)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Science Fiction", data[0].(map[string]any)["display_genre"])
	assert.EqualValues(t, 5, body["meta"].(map[string]any)["limit"])

	recorder = testutil.Serve(t, mount(repo), testutil.Request{Method: http.MethodGet, Path: "/books?page=3", Claims: testutil.Member()})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestGetBook_IncludesInstances verifies the detail view lists every copy with
its derived overdue flag.
*/
func TestGetBook_IncludesInstances(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetBook", mock.Anything, 1).Return(&book.Book{ID: 1, Title: "Dune", AuthorName: pointer.To("Herbert, Frank")}, nil)
	repo.On("GetBook", mock.Anything, 2).Return(nil, apperr.NotFound("Book"))

	copies := []*instance.BookInstance{
		{ID: "a", Imprint: "Chilton, 1965", Status: instance.StatusOnLoan, DueBack: pointer.To(date.MustParse("2024-01-09"))},
		{ID: "b", Imprint: "Ace, 1990", Status: instance.StatusAvailable},
	}

	recorder := testutil.Serve(t, mount(repo, copies...), testutil.Request{Method: http.MethodGet, Path: "/books/1", Claims: testutil.Member()})
	require.Equal(t, http.StatusOK, recorder.Code)

	var detail struct {
		Title     string `json:"title"`
		Author    string `json:"author"`
		Instances []struct {
			ID          string `json:"id"`
			StatusLabel string `json:"status_label"`
			IsOverdue   bool   `json:"is_overdue"`
		} `json:"instances"`
	}
	testutil.DecodeInto(t, recorder, &detail)

	assert.Equal(t, "Herbert, Frank", detail.Author)
	require.Len(t, detail.Instances, 2)
	assert.True(t, detail.Instances[0].IsOverdue)
	assert.Equal(t, "On loan", detail.Instances[0].StatusLabel)
	assert.False(t, detail.Instances[1].IsOverdue)

	recorder = testutil.Serve(t, mount(repo), testutil.Request{Method: http.MethodGet, Path: "/books/2", Claims: testutil.Member()})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
