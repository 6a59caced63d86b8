package author_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/catalog/author"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/pkg/date"
)

/*
TestPostgres_DeleteAuthorKeepsBooks verifies that removing an author clears
the reference on their books instead of deleting them.
*/
func TestPostgres_DeleteAuthorKeepsBooks(t *testing.T) {
	pool := testutil.PostgresPool(t)
	ctx := context.Background()
	repo := author.NewPostgresRepository(pool)

	born := date.MustParse("1920-01-02")
	a := &author.Author{FirstName: "Isaac", LastName: "Asimov", DateOfBirth: &born}
	require.NoError(t, repo.CreateAuthor(ctx, a))

	var bookID int
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO catalog.book (title, summary, isbn, authorid) VALUES ('Foundation', 'Psychohistory.', '9780553293357', $1) RETURNING id`,
		a.ID,
	).Scan(&bookID))

	stored, err := repo.GetAuthor(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DateOfBirth)
	assert.Equal(t, born, *stored.DateOfBirth)
	assert.Nil(t, stored.DateOfDeath)

	books, err := repo.ListBooks(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)

	require.NoError(t, repo.DeleteAuthor(ctx, a.ID))

	var authorID *int
	require.NoError(t, pool.QueryRow(ctx, `SELECT authorid FROM catalog.book WHERE id = $1`, bookID).Scan(&authorID))
	assert.Nil(t, authorID)

	_, err = repo.GetAuthor(ctx, a.ID)
	assert.True(t, apperr.IsNotFound(err))
}
