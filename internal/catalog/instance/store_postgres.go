package instance

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	// postgres dialect registers "$n" placeholders and identifier quoting.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/locallibrary/internal/catalog/loanevent"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/pkg/pointer"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

var dialect = goqu.Dialect("postgres")

// Table aliases used by the joined listing query.
var (
	bi = goqu.T("bi")
	bk = goqu.T("bk")
	ac = goqu.T("ac")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func qualified(name, alias string) exp.AliasedExpression {
	schemaName, tableName, _ := strings.Cut(name, ".")
	return goqu.S(schemaName).Table(tableName).As(alias)
}

// baseQuery joins the book title and borrower username onto each copy.
func baseQuery() *goqu.SelectDataset {
	return dialect.From(qualified(schema.CatalogBookInstance.Table, "bi")).
		LeftJoin(qualified(schema.CatalogBook.Table, "bk"),
			goqu.On(bk.Col(schema.CatalogBook.ID).Eq(bi.Col(schema.CatalogBookInstance.BookID)))).
		LeftJoin(qualified(schema.UserAccount.Table, "ac"),
			goqu.On(ac.Col(schema.UserAccount.ID).Eq(bi.Col(schema.CatalogBookInstance.BorrowerID)))).
		Prepared(true)
}

func selectColumns(dataset *goqu.SelectDataset) *goqu.SelectDataset {
	return dataset.Select(
		bi.Col(schema.CatalogBookInstance.ID),
		bi.Col(schema.CatalogBookInstance.BookID),
		bk.Col(schema.CatalogBook.Title),
		bi.Col(schema.CatalogBookInstance.Imprint),
		bi.Col(schema.CatalogBookInstance.DueBack),
		bi.Col(schema.CatalogBookInstance.BorrowerID),
		ac.Col(schema.UserAccount.Username),
		bi.Col(schema.CatalogBookInstance.Status),
	)
}

func byDueDate(dataset *goqu.SelectDataset) *goqu.SelectDataset {
	return dataset.Order(
		bi.Col(schema.CatalogBookInstance.DueBack).Asc().NullsLast(),
		bi.Col(schema.CatalogBookInstance.ID).Asc(),
	)
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*BookInstance, int, error) {
	dataset := baseQuery()

	if len(filter.Statuses) > 0 {
		dataset = dataset.Where(bi.Col(schema.CatalogBookInstance.Status).In(slice.Map(filter.Statuses, func(status Status) string {
			return string(status)
		})))
	}
	if filter.BookID > 0 {
		dataset = dataset.Where(bi.Col(schema.CatalogBookInstance.BookID).Eq(filter.BookID))
	}
	if filter.BorrowerID != "" {
		dataset = dataset.Where(bi.Col(schema.CatalogBookInstance.BorrowerID).Eq(filter.BorrowerID))
	}

	return repository.page(context, dataset, limit, offset, "list_book_instances")
}

func (repository *PostgresRepository) ListLoans(context context.Context, borrowerID string, limit, offset int) ([]*BookInstance, int, error) {
	dataset := baseQuery().Where(bi.Col(schema.CatalogBookInstance.Status).Eq(string(StatusOnLoan)))

	if borrowerID != "" {
		dataset = dataset.Where(bi.Col(schema.CatalogBookInstance.BorrowerID).Eq(borrowerID))
	}

	return repository.page(context, dataset, limit, offset, "list_loans")
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int) ([]*BookInstance, error) {
	dataset := byDueDate(selectColumns(baseQuery().Where(bi.Col(schema.CatalogBookInstance.BookID).Eq(bookID))))

	query, args, err := dataset.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("instance: failed to build query: %w", err)
	}

	return repository.query(context, query, args, "list_book_copies")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*BookInstance, error) {
	query, args, err := selectColumns(baseQuery().Where(bi.Col(schema.CatalogBookInstance.ID).Eq(id))).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("instance: failed to build query: %w", err)
	}

	instances, err := repository.query(context, query, args, "get_book_instance")
	if err != nil {
		return nil, err
	}

	if len(instances) == 0 {
		return nil, apperr.NotFound("Book instance")
	}
	return instances[0], nil
}

func (repository *PostgresRepository) Create(context context.Context, instance *BookInstance, event *loanevent.Event) error {
	insertStmt := dialect.Insert(qualifiedTable()).
		Rows(goqu.Record{
			schema.CatalogBookInstance.ID:         instance.ID,
			schema.CatalogBookInstance.BookID:     pointer.Nullable(instance.BookID),
			schema.CatalogBookInstance.Imprint:    instance.Imprint,
			schema.CatalogBookInstance.DueBack:    pointer.Nullable(instance.DueBack),
			schema.CatalogBookInstance.BorrowerID: pointer.Nullable(instance.BorrowerID),
			schema.CatalogBookInstance.Status:     string(instance.Status),
		}).
		Prepared(true)

	query, args, err := insertStmt.ToSQL()
	if err != nil {
		return fmt.Errorf("instance: failed to build insert: %w", err)
	}

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		if _, err := transaction.Exec(context, query, args...); err != nil {
			return dberr.Wrap(err, "create_book_instance")
		}
		return appendEvent(context, transaction, event)
	})
}

func (repository *PostgresRepository) Save(context context.Context, instance *BookInstance, event *loanevent.Event) error {
	updateStmt := dialect.Update(qualifiedTable()).
		Set(goqu.Record{
			schema.CatalogBookInstance.BookID:     pointer.Nullable(instance.BookID),
			schema.CatalogBookInstance.Imprint:    instance.Imprint,
			schema.CatalogBookInstance.DueBack:    pointer.Nullable(instance.DueBack),
			schema.CatalogBookInstance.BorrowerID: pointer.Nullable(instance.BorrowerID),
			schema.CatalogBookInstance.Status:     string(instance.Status),
		}).
		Where(goqu.C(schema.CatalogBookInstance.ID).Eq(instance.ID)).
		Prepared(true)

	query, args, err := updateStmt.ToSQL()
	if err != nil {
		return fmt.Errorf("instance: failed to build update: %w", err)
	}

	return postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		cmd, err := transaction.Exec(context, query, args...)
		if err != nil {
			return dberr.Wrap(err, "save_book_instance")
		}
		if cmd.RowsAffected() == 0 {
			return apperr.NotFound("Book instance")
		}
		return appendEvent(context, transaction, event)
	})
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query, args, err := dialect.Delete(qualifiedTable()).
		Where(goqu.C(schema.CatalogBookInstance.ID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("instance: failed to build delete: %w", err)
	}

	cmd, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "delete_book_instance")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Book instance")
	}
	return nil
}

func (repository *PostgresRepository) page(context context.Context, dataset *goqu.SelectDataset, limit, offset int, action string) ([]*BookInstance, int, error) {
	countQuery, countArgs, err := dataset.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("instance: failed to build count: %w", err)
	}

	selectQuery, selectArgs, err := byDueDate(selectColumns(dataset)).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("instance: failed to build query: %w", err)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_"+action)
	}

	instances, err := repository.query(context, selectQuery, selectArgs, action)
	return instances, total, err
}

func (repository *PostgresRepository) query(context context.Context, query string, args []any, action string) ([]*BookInstance, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	instances := []*BookInstance{}
	for rows.Next() {
		var (
			instance = &BookInstance{}
			status   string
		)
		if err := rows.Scan(
			&instance.ID, &instance.BookID, &instance.BookTitle, &instance.Imprint,
			&instance.DueBack, &instance.BorrowerID, &instance.BorrowerName, &status,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_"+action)
		}
		instance.Status = Status(status)
		instances = append(instances, instance)
	}

	return instances, dberr.Wrap(rows.Err(), action)
}

func qualifiedTable() exp.IdentifierExpression {
	schemaName, tableName, _ := strings.Cut(schema.CatalogBookInstance.Table, ".")
	return goqu.S(schemaName).Table(tableName)
}

func appendEvent(context context.Context, transaction pgx.Tx, event *loanevent.Event) error {
	if event == nil {
		return nil
	}
	return loanevent.Insert(context, transaction, event)
}
