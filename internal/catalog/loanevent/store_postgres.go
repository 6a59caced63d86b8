package loanevent

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	// postgres dialect registers "$n" placeholders and identifier quoting.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

var (
	dialect = goqu.Dialect("postgres")
	codec   = jsoniter.ConfigFastest
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Insert appends event using db, which is usually the transaction that
// changed the copy.
func Insert(ctx context.Context, db Execer, event *Event) error {
	payload, err := codec.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("loanevent: failed to encode payload: %w", err)
	}

	insertStmt := dialect.Insert(Table()).
		Rows(goqu.Record{
			schema.CatalogLoanEvent.InstanceID: event.InstanceID,
			schema.CatalogLoanEvent.EventType:  string(event.Type),
			schema.CatalogLoanEvent.ActorID:    pointer.Nullable(event.ActorID),
			schema.CatalogLoanEvent.Payload:    string(payload),
			schema.CatalogLoanEvent.OccurredAt: event.OccurredAt,
		}).
		Prepared(true)

	query, args, err := insertStmt.ToSQL()
	if err != nil {
		return fmt.Errorf("loanevent: failed to build insert: %w", err)
	}

	_, err = db.Exec(ctx, query, args...)
	return dberr.Wrap(err, "insert_loan_event")
}

// Table returns the goqu identifier of catalog.loanevent.
func Table() exp.IdentifierExpression {
	schemaName, tableName, _ := strings.Cut(schema.CatalogLoanEvent.Table, ".")
	return goqu.S(schemaName).Table(tableName)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByInstance(context context.Context, instanceID string, limit, offset int) ([]*Event, int, error) {
	filtered := dialect.From(Table()).
		Where(goqu.C(schema.CatalogLoanEvent.InstanceID).Eq(instanceID)).
		Prepared(true)

	countQuery, countArgs, err := filtered.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("loanevent: failed to build count: %w", err)
	}

	selectQuery, selectArgs, err := filtered.
		Select(
			goqu.C(schema.CatalogLoanEvent.ID),
			goqu.C(schema.CatalogLoanEvent.InstanceID),
			goqu.C(schema.CatalogLoanEvent.EventType),
			goqu.C(schema.CatalogLoanEvent.ActorID),
			goqu.C(schema.CatalogLoanEvent.Payload),
			goqu.C(schema.CatalogLoanEvent.OccurredAt),
		).
		Order(goqu.C(schema.CatalogLoanEvent.OccurredAt).Desc(), goqu.C(schema.CatalogLoanEvent.ID).Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("loanevent: failed to build select: %w", err)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_loan_events")
	}

	rows, err := repository.db.Query(context, selectQuery, selectArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_loan_events")
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		var (
			event     = &Event{}
			eventType string
			payload   []byte
		)
		if err := rows.Scan(&event.ID, &event.InstanceID, &eventType, &event.ActorID, &payload, &event.OccurredAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_loan_event")
		}

		event.Type = Type(eventType)
		if err := codec.Unmarshal(payload, &event.Payload); err != nil {
			return nil, 0, fmt.Errorf("loanevent: failed to decode payload of event %d: %w", event.ID, err)
		}
		events = append(events, event)
	}

	return events, total, dberr.Wrap(rows.Err(), "list_loan_events")
}
