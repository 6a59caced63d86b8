package book

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/catalog/taxonomy"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// bookSelect reads a book with its author and language names.
var bookSelect = fmt.Sprintf(`
	SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
	       a.%s || ', ' || a.%s, l.%s
	FROM %s b
	LEFT JOIN %s a ON a.%s = b.%s
	LEFT JOIN %s l ON l.%s = b.%s
`,
	schema.CatalogBook.ID, schema.CatalogBook.Title, schema.CatalogBook.Summary,
	schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID, schema.CatalogBook.LanguageID,
	schema.CatalogAuthor.LastName, schema.CatalogAuthor.FirstName, schema.CatalogLanguage.Name,
	schema.CatalogBook.Table,
	schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
	schema.CatalogLanguage.Table, schema.CatalogLanguage.ID, schema.CatalogBook.LanguageID,
)

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{GenreIDs: []int{}, Genres: []*taxonomy.Genre{}}
	err := row.Scan(&b.ID, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID, &b.LanguageID, &b.AuthorName, &b.LanguageName)
	return b, err
}

func (repository *PostgresRepository) ListBooks(context context.Context, search string, limit, offset int) ([]*Book, int, error) {
	where, args := "", []any{}
	if search != "" {
		where = fmt.Sprintf("WHERE b.%s ILIKE '%%' || $1 || '%%'", schema.CatalogBook.Title)
		args = append(args, search)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s b %s`, schema.CatalogBook.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`%s %s ORDER BY b.%s ASC, b.%s ASC LIMIT $%d OFFSET $%d`,
		bookSelect, where, schema.CatalogBook.Title, schema.CatalogBook.ID, len(args)+1, len(args)+2,
	)

	rows, err := repository.db.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}

	if err := repository.loadGenres(context, books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id int) (*Book, error) {
	query := fmt.Sprintf(`%s WHERE b.%s = $1`, bookSelect, schema.CatalogBook.ID)

	b, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "get_book", "Book")
	}

	if err := repository.loadGenres(context, []*Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// loadGenres fills Genres and GenreIDs for a page of books in one query.
func (repository *PostgresRepository) loadGenres(context context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int]*Book, len(books))
	ids := make([]int, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query := fmt.Sprintf(`
		SELECT bg.%s, g.%s, g.%s
		FROM %s bg
		JOIN %s g ON g.%s = bg.%s
		WHERE bg.%s = ANY($1)
		ORDER BY g.%s ASC, g.%s ASC
	`,
		schema.CatalogBookGenre.BookID, schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogBookGenre.Table,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogBookGenre.GenreID,
		schema.CatalogBookGenre.BookID,
		schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_book_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int
		genre := &taxonomy.Genre{}
		if err := rows.Scan(&bookID, &genre.ID, &genre.Name); err != nil {
			return dberr.Wrap(err, "scan_book_genre")
		}
		if b, found := byID[bookID]; found {
			b.Genres = append(b.Genres, genre)
			b.GenreIDs = append(b.GenreIDs, genre.ID)
		}
	}
	return dberr.Wrap(rows.Err(), "list_book_genres")
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.Summary,
		schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID, schema.CatalogBook.LanguageID,
		schema.CatalogBook.ID,
	)

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		err := transaction.QueryRow(context, query, b.Title, b.Summary, b.ISBN, b.AuthorID, b.LanguageID).Scan(&b.ID)
		if err != nil {
			return dberr.Wrap(err, "create_book")
		}
		return replaceGenres(context, transaction, b.ID, b.GenreIDs)
	})
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
	`,
		schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.Summary,
		schema.CatalogBook.ISBN, schema.CatalogBook.AuthorID, schema.CatalogBook.LanguageID,
		schema.CatalogBook.ID,
	)

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		cmd, err := transaction.Exec(context, query, b.ID, b.Title, b.Summary, b.ISBN, b.AuthorID, b.LanguageID)
		if err != nil {
			return dberr.Wrap(err, "update_book")
		}
		if cmd.RowsAffected() == 0 {
			return apperr.NotFound("Book")
		}
		return replaceGenres(context, transaction, b.ID, b.GenreIDs)
	})
}

// DeleteBook removes the book. Its genre links go with it; its copies stay
// with no book attached.
func (repository *PostgresRepository) DeleteBook(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// replaceGenres swaps the book's genre set for genreIDs.
func replaceGenres(context context.Context, transaction pgx.Tx, bookID int, genreIDs []int) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID)
	if _, err := transaction.Exec(context, deleteQuery, bookID); err != nil {
		return dberr.Wrap(err, "clear_book_genres")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CatalogBookGenre.Table, schema.CatalogBookGenre.BookID, schema.CatalogBookGenre.GenreID,
	)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, bookID, genreID)
	}

	return dberr.Wrap(transaction.SendBatch(context, batch).Close(), "insert_book_genres")
}
