package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/database"
	"github.com/allisson/accounts/internal/eventstore/domain"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// MySQLEventRepository stores events in MySQL. Aggregate ids are BINARY(16).
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQLEventRepository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{
		db: db,
	}
}

// Append inserts event and fills in its Sequence and RecordedAt. A duplicate key
// error is reported as a duplicate.
func (r *MySQLEventRepository) Append(ctx context.Context, event *domain.StoredEvent) (domain.AppendResult, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := event.AggregateID.MarshalBinary()
	if err != nil {
		return 0, err
	}

	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return 0, err
	}

	recordedAt := time.Now().UTC().Truncate(time.Microsecond)

	query := `INSERT INTO events (aggregate_id, aggregate_type, event_type, idempotency_key, payload, metadata, recorded_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(ctx, query, idBytes, event.AggregateType, event.EventType,
		event.IdempotencyKey, string(event.Payload), string(metadata), recordedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.AppendResultDuplicate, nil
		}
		return 0, err
	}

	sequence, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	event.Sequence = sequence
	event.RecordedAt = recordedAt

	return domain.AppendResultAppended, nil
}

// ListByAggregate returns up to limit events of aggregateID with a sequence
// greater than afterSequence, in sequence order.
func (r *MySQLEventRepository) ListByAggregate(
	ctx context.Context,
	aggregateID uuid.UUID,
	afterSequence int64,
	limit int,
) ([]*domain.StoredEvent, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := aggregateID.MarshalBinary()
	if err != nil {
		return nil, err
	}

	query := `SELECT sequence, aggregate_id, aggregate_type, event_type, idempotency_key, payload, metadata, recorded_at
			  FROM events
			  WHERE aggregate_id = ? AND sequence > ?
			  ORDER BY sequence ASC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, idBytes, afterSequence, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.StoredEvent, 0)
	for rows.Next() {
		var event domain.StoredEvent
		var aggregateBytes, payload, metadata []byte

		err := rows.Scan(&event.Sequence, &aggregateBytes, &event.AggregateType, &event.EventType,
			&event.IdempotencyKey, &payload, &metadata, &event.RecordedAt)
		if err != nil {
			return nil, err
		}

		if err := event.AggregateID.UnmarshalBinary(aggregateBytes); err != nil {
			return nil, err
		}
		event.Payload = payload
		if err := decodeMetadata(metadata, &event); err != nil {
			return nil, err
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
