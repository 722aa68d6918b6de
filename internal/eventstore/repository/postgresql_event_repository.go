package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/database"
	"github.com/allisson/accounts/internal/eventstore/domain"
)

// PostgreSQLEventRepository stores events in PostgreSQL.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{
		db: db,
	}
}

// Append inserts event and fills in its Sequence and RecordedAt. A conflicting
// insert returns no row and is reported as a duplicate.
func (r *PostgreSQLEventRepository) Append(ctx context.Context, event *domain.StoredEvent) (domain.AppendResult, error) {
	querier := database.GetTx(ctx, r.db)

	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO events (aggregate_id, aggregate_type, event_type, idempotency_key, payload, metadata, recorded_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  ON CONFLICT (aggregate_id, event_type, idempotency_key) DO NOTHING
			  RETURNING sequence, recorded_at`

	err = querier.QueryRowContext(ctx, query, event.AggregateID, event.AggregateType, event.EventType,
		event.IdempotencyKey, string(event.Payload), string(metadata)).
		Scan(&event.Sequence, &event.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AppendResultDuplicate, nil
	}
	if err != nil {
		return 0, err
	}

	return domain.AppendResultAppended, nil
}

// ListByAggregate returns up to limit events of aggregateID with a sequence
// greater than afterSequence, in sequence order.
func (r *PostgreSQLEventRepository) ListByAggregate(
	ctx context.Context,
	aggregateID uuid.UUID,
	afterSequence int64,
	limit int,
) ([]*domain.StoredEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT sequence, aggregate_id, aggregate_type, event_type, idempotency_key, payload, metadata, recorded_at
			  FROM events
			  WHERE aggregate_id = $1 AND sequence > $2
			  ORDER BY sequence ASC
			  LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, aggregateID, afterSequence, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.StoredEvent, 0)
	for rows.Next() {
		var event domain.StoredEvent
		var payload, metadata []byte

		err := rows.Scan(&event.Sequence, &event.AggregateID, &event.AggregateType, &event.EventType,
			&event.IdempotencyKey, &payload, &metadata, &event.RecordedAt)
		if err != nil {
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
