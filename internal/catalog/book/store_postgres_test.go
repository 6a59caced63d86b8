package book_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/catalog/book"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

/*
TestPostgres_BookLifecycle covers the genre set, title search and the
non-cascading delete.
*/
func TestPostgres_BookLifecycle(t *testing.T) {
	pool := testutil.PostgresPool(t)
	ctx := context.Background()
	repo := book.NewPostgresRepository(pool)

	var authorID, languageID, fantasy, poetry int
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO catalog.author (firstname, lastname) VALUES ('Ursula', 'Le Guin') RETURNING id`).Scan(&authorID))
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO catalog.language (name) VALUES ('English') RETURNING id`).Scan(&languageID))
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO catalog.genre (name) VALUES ('Fantasy') RETURNING id`).Scan(&fantasy))
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO catalog.genre (name) VALUES ('Poetry') RETURNING id`).Scan(&poetry))

	b := &book.Book{
		Title:      "A Wizard of Earthsea",
		Summary:    "Ged learns the true names of things.",
		ISBN:       "9780547773742",
		AuthorID:   pointer.To(authorID),
		LanguageID: pointer.To(languageID),
		GenreIDs:   []int{poetry, fantasy},
	}
	require.NoError(t, repo.CreateBook(ctx, b))
	require.NotZero(t, b.ID)

	stored, err := repo.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Le Guin, Ursula", *stored.AuthorName)
	assert.Equal(t, "English", *stored.LanguageName)
	assert.Equal(t, "Fantasy, Poetry", stored.DisplayGenre())

	// A missing genre rolls the whole update back.
	stored.Title = "Earthsea"
	stored.GenreIDs = []int{fantasy, 999999}
	err = repo.UpdateBook(ctx, stored)
	require.Error(t, err)

	unchanged, err := repo.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "A Wizard of Earthsea", unchanged.Title)
	assert.Len(t, unchanged.Genres, 2)

	books, total, err := repo.ListBooks(ctx, "WIZARD", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)

	_, total, err = repo.ListBooks(ctx, "dune", 5, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	var instanceID string
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO catalog.bookinstance (id, bookid, imprint) VALUES (gen_random_uuid(), $1, 'Parnassus, 1968') RETURNING id`, b.ID,
	).Scan(&instanceID))

	require.NoError(t, repo.DeleteBook(ctx, b.ID))

	var bookID *int
	require.NoError(t, pool.QueryRow(ctx, `SELECT bookid FROM catalog.bookinstance WHERE id = $1`, instanceID).Scan(&bookID))
	assert.Nil(t, bookID)

	_, err = repo.GetBook(ctx, b.ID)
	assert.True(t, apperr.IsNotFound(err))
}
