package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/eventstore/domain"
	"github.com/allisson/accounts/internal/eventstore/usecase/mocks"
)

func TestRunRecordEvent(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	aggregateID := uuid.Must(uuid.NewV7())

	input := RecordEventInput{
		AggregateID:   aggregateID.String(),
		AggregateType: domain.AggregateTypeUser,
		EventType:     domain.EventTypeAccountRegistered,
		Payload:       `{"email":"a@b.co"}`,
		Metadata:      `{"idempotency_key":"k-1"}`,
	}
	expected := domain.DomainEvent{
		AggregateID:   aggregateID,
		AggregateType: domain.AggregateTypeUser,
		EventType:     domain.EventTypeAccountRegistered,
		Payload:       json.RawMessage(`{"email":"a@b.co"}`),
		Metadata:      map[string]string{"idempotency_key": "k-1"},
	}

	t.Run("text-output", func(t *testing.T) {
		recorder := &mocks.MockEventRecorder{}
		recorder.On("Record", ctx, expected).Return(domain.AppendResultAppended, nil)

		var out bytes.Buffer
		err := RunRecordEvent(ctx, recorder.Record, logger, &out, input, "text")

		require.NoError(t, err)
		assert.Equal(t, "Event accountRegistred for aggregate "+aggregateID.String()+": appended\n", out.String())
		recorder.AssertExpectations(t)
	})

	t.Run("json-output-duplicate", func(t *testing.T) {
		recorder := &mocks.MockEventRecorder{}
		recorder.On("Record", ctx, expected).Return(domain.AppendResultDuplicate, nil)

		var out bytes.Buffer
		err := RunRecordEvent(ctx, recorder.Record, logger, &out, input, "json")

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"result": "duplicate"`)
		recorder.AssertExpectations(t)
	})

	t.Run("empty payload and metadata", func(t *testing.T) {
		recorder := &mocks.MockEventRecorder{}
		recorder.On("Record", ctx, mock.MatchedBy(func(event domain.DomainEvent) bool {
			return event.Payload == nil && len(event.Metadata) == 0 && event.Metadata != nil
		})).Return(domain.AppendResultAppended, nil)

		in := input
		in.Payload, in.Metadata = "", ""
		require.NoError(t, RunRecordEvent(ctx, recorder.Record, logger, &bytes.Buffer{}, in, "text"))
		recorder.AssertExpectations(t)
	})

	t.Run("recorder error", func(t *testing.T) {
		recorder := &mocks.MockEventRecorder{}
		recorder.On("Record", ctx, expected).Return(domain.AppendResult(0), domain.ErrStoreUnavailable)

		err := RunRecordEvent(ctx, recorder.Record, logger, &bytes.Buffer{}, input, "text")
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.ErrorContains(t, err, "failed to record event")
	})

	t.Run("invalid input", func(t *testing.T) {
		failing := func(context.Context, domain.DomainEvent) (domain.AppendResult, error) {
			return 0, errors.New("must not be called")
		}

		in := input
		in.AggregateID = "not-a-uuid"
		assert.ErrorContains(t, RunRecordEvent(ctx, failing, logger, &bytes.Buffer{}, in, "text"), "invalid aggregate id")

		in = input
		in.Metadata = `["x"]`
		assert.ErrorContains(t, RunRecordEvent(ctx, failing, logger, &bytes.Buffer{}, in, "text"), "invalid metadata")

		assert.ErrorContains(t, RunRecordEvent(ctx, failing, logger, &bytes.Buffer{}, input, "xml"), "invalid format")
	})
}

type fakeAccountRegisteredRecorder struct {
	userID uuid.UUID
	data   json.RawMessage
	err    error
}

func (f *fakeAccountRegisteredRecorder) Handle(_ context.Context, userID uuid.UUID, data json.RawMessage) error {
	f.userID, f.data = userID, data
	return f.err
}

func TestRunRecordAccountRegistered(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	userID := uuid.Must(uuid.NewV7())

	t.Run("success", func(t *testing.T) {
		recorder := &fakeAccountRegisteredRecorder{}

		var out bytes.Buffer
		err := RunRecordAccountRegistered(ctx, recorder, logger, &out, userID.String(), `{"email":"a@b.co"}`)

		require.NoError(t, err)
		assert.Equal(t, userID, recorder.userID)
		assert.JSONEq(t, `{"email":"a@b.co"}`, string(recorder.data))
		assert.Contains(t, out.String(), userID.String())
	})

	t.Run("no data", func(t *testing.T) {
		recorder := &fakeAccountRegisteredRecorder{}
		require.NoError(t, RunRecordAccountRegistered(ctx, recorder, logger, &bytes.Buffer{}, userID.String(), ""))
		assert.Nil(t, recorder.data)
	})

	t.Run("invalid user id", func(t *testing.T) {
		err := RunRecordAccountRegistered(ctx, &fakeAccountRegisteredRecorder{}, logger, &bytes.Buffer{}, "x", "")
		assert.ErrorContains(t, err, "invalid user id")
	})

	t.Run("recorder error", func(t *testing.T) {
		recorder := &fakeAccountRegisteredRecorder{err: domain.ErrStoreUnavailable}
		err := RunRecordAccountRegistered(ctx, recorder, logger, &bytes.Buffer{}, userID.String(), "")
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}
