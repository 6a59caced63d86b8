package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Count(context context.Context) (*Summary, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT count(*) FROM %s),
			(SELECT count(*) FROM %s),
			(SELECT count(*) FROM %s WHERE %s = 'a'),
			(SELECT count(*) FROM %s)
	`,
		schema.CatalogBook.Table,
		schema.CatalogBookInstance.Table,
		schema.CatalogBookInstance.Table, schema.CatalogBookInstance.Status,
		schema.CatalogAuthor.Table,
	)

	summary := &Summary{}
	err := repository.db.QueryRow(context, query).Scan(
		&summary.NumBooks, &summary.NumInstances, &summary.NumInstancesAvailable, &summary.NumAuthors,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "count_catalog")
	}
	return summary, nil
}
