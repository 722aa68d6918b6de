package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/eventstore/domain"
	"github.com/allisson/accounts/internal/testutil"
)

var (
	insertEventQuery = regexp.QuoteMeta("INSERT INTO events")
	selectEventQuery = regexp.QuoteMeta("SELECT sequence, aggregate_id")
	eventColumns     = []string{
		"sequence", "aggregate_id", "aggregate_type", "event_type",
		"idempotency_key", "payload", "metadata", "recorded_at",
	}
)

func newStoredEvent() *domain.StoredEvent {
	return &domain.StoredEvent{
		AggregateID:    uuid.MustParse("0190a6d2-5a4b-7c3e-8f00-000000000001"),
		AggregateType:  domain.AggregateTypeUser,
		EventType:      domain.EventTypeAccountRegistered,
		IdempotencyKey: "key-1",
		Payload:        json.RawMessage(`{"email":"a@b.c"}`),
		Metadata:       map[string]string{"source": "auth"},
	}
}

func TestPostgreSQLEventRepository_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("Appended", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLEventRepository(db)
		event := newStoredEvent()
		recordedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		mock.ExpectQuery(insertEventQuery).
			WithArgs(event.AggregateID, "User", "accountRegistred", "key-1", `{"email":"a@b.c"}`, `{"source":"auth"}`).
			WillReturnRows(sqlmock.NewRows([]string{"sequence", "recorded_at"}).AddRow(int64(42), recordedAt))

		result, err := repo.Append(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, domain.AppendResultAppended, result)
		assert.Equal(t, int64(42), event.Sequence)
		assert.Equal(t, recordedAt, event.RecordedAt)
	})

	t.Run("ConflictIsDuplicate", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLEventRepository(db)

		mock.ExpectQuery(insertEventQuery).
			WillReturnRows(sqlmock.NewRows([]string{"sequence", "recorded_at"}))

		result, err := repo.Append(ctx, newStoredEvent())

		require.NoError(t, err)
		assert.Equal(t, domain.AppendResultDuplicate, result)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLEventRepository(db)
		dbErr := errors.New("connection refused")

		mock.ExpectQuery(insertEventQuery).WillReturnError(dbErr)

		_, err := repo.Append(ctx, newStoredEvent())

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestPostgreSQLEventRepository_ListByAggregate(t *testing.T) {
	ctx := context.Background()
	aggregateID := uuid.MustParse("0190a6d2-5a4b-7c3e-8f00-000000000001")
	recordedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("ReturnsRowsInOrder", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLEventRepository(db)

		mock.ExpectQuery(selectEventQuery).
			WithArgs(aggregateID, int64(1), 10).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(2), aggregateID.String(), "User", "accountRegistred", "k2", []byte(`{"n":2}`), []byte(`{}`), recordedAt).
				AddRow(int64(5), aggregateID.String(), "User", "profileUpdated", "k5", []byte(`{"n":5}`), []byte(`{"a":"b"}`), recordedAt))

		events, err := repo.ListByAggregate(ctx, aggregateID, 1, 10)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(2), events[0].Sequence)
		assert.Equal(t, aggregateID, events[0].AggregateID)
		assert.JSONEq(t, `{"n":2}`, string(events[0].Payload))
		assert.Empty(t, events[0].Metadata)
		assert.Equal(t, int64(5), events[1].Sequence)
		assert.Equal(t, map[string]string{"a": "b"}, events[1].Metadata)
	})

	t.Run("EmptyStream", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLEventRepository(db)

		mock.ExpectQuery(selectEventQuery).WillReturnRows(sqlmock.NewRows(eventColumns))

		events, err := repo.ListByAggregate(ctx, aggregateID, 0, 10)

		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("BadMetadata", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLEventRepository(db)

		mock.ExpectQuery(selectEventQuery).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(1), aggregateID.String(), "User", "x", "k", []byte(`null`), []byte(`[`), recordedAt))

		_, err := repo.ListByAggregate(ctx, aggregateID, 0, 10)

		assert.ErrorContains(t, err, "failed to decode metadata")
	})
}

func TestPostgreSQLEventRepository_Integration(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	repo := NewPostgreSQLEventRepository(db)
	ctx := context.Background()

	first := newStoredEvent()
	result, err := repo.Append(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.AppendResultAppended, result)

	result, err = repo.Append(ctx, newStoredEvent())
	require.NoError(t, err)
	assert.Equal(t, domain.AppendResultDuplicate, result)

	second := newStoredEvent()
	second.IdempotencyKey = "key-2"
	_, err = repo.Append(ctx, second)
	require.NoError(t, err)
	assert.Greater(t, second.Sequence, first.Sequence)

	events, err := repo.ListByAggregate(ctx, first.AggregateID, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.Sequence, events[0].Sequence)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(events[0].Payload))

	events, err = repo.ListByAggregate(ctx, first.AggregateID, first.Sequence, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "key-2", events[0].IdempotencyKey)
}
