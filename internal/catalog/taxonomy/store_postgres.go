package taxonomy

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

// namedTable describes the id/name tables this package owns.
type namedTable struct {
	table, id, name, resource string
}

var (
	genreTable    = namedTable{schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogGenre.Name, "Genre"}
	languageTable = namedTable{schema.CatalogLanguage.Table, schema.CatalogLanguage.ID, schema.CatalogLanguage.Name, "Language"}
)

func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	var genres []*Genre
	err := repository.list(context, genreTable, func(id int, name string) {
		genres = append(genres, &Genre{ID: id, Name: name})
	})
	return genres, err
}

func (repository *PostgresRepository) GetGenre(context context.Context, id int) (*Genre, error) {
	genre := &Genre{}
	err := repository.get(context, genreTable, id, &genre.ID, &genre.Name)
	return genre, err
}

func (repository *PostgresRepository) CreateGenre(context context.Context, genre *Genre) error {
	return repository.create(context, genreTable, genre.Name, &genre.ID)
}

func (repository *PostgresRepository) DeleteGenre(context context.Context, id int) error {
	return repository.delete(context, genreTable, id)
}

func (repository *PostgresRepository) ListLanguages(context context.Context) ([]*Language, error) {
	var languages []*Language
	err := repository.list(context, languageTable, func(id int, name string) {
		languages = append(languages, &Language{ID: id, Name: name})
	})
	return languages, err
}

func (repository *PostgresRepository) GetLanguage(context context.Context, id int) (*Language, error) {
	language := &Language{}
	err := repository.get(context, languageTable, id, &language.ID, &language.Name)
	return language, err
}

func (repository *PostgresRepository) CreateLanguage(context context.Context, language *Language) error {
	return repository.create(context, languageTable, language.Name, &language.ID)
}

func (repository *PostgresRepository) DeleteLanguage(context context.Context, id int) error {
	return repository.delete(context, languageTable, id)
}

func (repository *PostgresRepository) list(context context.Context, table namedTable, collect func(id int, name string)) error {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		table.id, table.name, table.table, table.name, table.id,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return dberr.Wrap(err, "list_"+table.table)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return dberr.Wrap(err, "scan_"+table.table)
		}
		collect(id, name)
	}

	return dberr.Wrap(rows.Err(), "list_"+table.table)
}

func (repository *PostgresRepository) get(context context.Context, table namedTable, id int, dest ...any) error {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		table.id, table.name, table.table, table.id,
	)

	err := repository.db.QueryRow(context, query, id).Scan(dest...)
	return dberr.NotFound(err, "get_"+table.table, table.resource)
}

func (repository *PostgresRepository) create(context context.Context, table namedTable, name string, id *int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		table.table, table.name, table.id,
	)

	err := repository.db.QueryRow(context, query, name).Scan(id)
	return dberr.Wrap(err, "create_"+table.table)
}

func (repository *PostgresRepository) delete(context context.Context, table namedTable, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.table, table.id)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_"+table.table)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(table.resource)
	}
	return nil
}
