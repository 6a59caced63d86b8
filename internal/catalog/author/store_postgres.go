package author

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var authorColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.CatalogAuthor.ID, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
	schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
)

func (repository *PostgresRepository) ListAuthors(context context.Context, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s ASC, %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		authorColumns, schema.CatalogAuthor.Table,
		schema.CatalogAuthor.LastName, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.ID,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogAuthor.Table)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) GetAuthor(context context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		authorColumns, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID,
	)

	a := &Author{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.DateOfDeath,
	)
	if err != nil {
		return nil, dberr.NotFound(err, "get_author", "Author")
	}
	return a, nil
}

func (repository *PostgresRepository) ListBooks(context context.Context, authorID int) ([]*BookSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Summary,
		schema.CatalogBook.Table, schema.CatalogBook.AuthorID, schema.CatalogBook.Title,
	)

	rows, err := repository.db.Query(context, query, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_author_books")
	}
	defer rows.Close()

	books := []*BookSummary{}
	for rows.Next() {
		b := &BookSummary{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Summary); err != nil {
			return nil, dberr.Wrap(err, "scan_author_book")
		}
		books = append(books, b)
	}

	return books, dberr.Wrap(rows.Err(), "list_author_books")
}

func (repository *PostgresRepository) CreateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath,
		schema.CatalogAuthor.ID,
	)

	err := repository.db.QueryRow(context, query, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath).Scan(&a.ID)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.FirstName, schema.CatalogAuthor.LastName,
		schema.CatalogAuthor.DateOfBirth, schema.CatalogAuthor.DateOfDeath, schema.CatalogAuthor.ID,
	)

	cmd, err := repository.db.Exec(context, query, a.ID, a.FirstName, a.LastName, a.DateOfBirth, a.DateOfDeath)
	if err != nil {
		return dberr.Wrap(err, "update_author")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Author")
	}
	return nil
}

func (repository *PostgresRepository) DeleteAuthor(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Author")
	}
	return nil
}
