package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/accounts/internal/eventstore/domain"
)

func TestMapEventsToListResponse(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	events := []*domain.StoredEvent{
		{Sequence: 3, AggregateID: id, EventType: "a", Payload: json.RawMessage(`1`), RecordedAt: now},
		{Sequence: 9, AggregateID: id, EventType: "b", Payload: json.RawMessage(`2`), RecordedAt: now},
	}

	resp := MapEventsToListResponse(events, 1)

	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(9), resp.NextAfter)
	assert.Equal(t, id.String(), resp.Data[0].AggregateID)
	assert.Equal(t, "b", resp.Data[1].EventType)
}

func TestMapEventsToListResponse_Empty(t *testing.T) {
	resp := MapEventsToListResponse(nil, 5)

	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(5), resp.NextAfter)

	body, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"next_after":5}`, string(body))
}
