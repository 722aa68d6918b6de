package usecase

import (
	"context"
	"time"

	"github.com/allisson/accounts/internal/eventstore/domain"
	"github.com/allisson/accounts/internal/metrics"
)

type eventRecorderWithMetrics struct {
	next    EventRecorder
	metrics metrics.BusinessMetrics
}

// NewEventRecorderWithMetrics wraps an EventRecorder with metrics recording.
// The status label is appended, duplicate or error.
func NewEventRecorderWithMetrics(recorder EventRecorder, m metrics.BusinessMetrics) EventRecorder {
	return &eventRecorderWithMetrics{
		next:    recorder,
		metrics: m,
	}
}

func (r *eventRecorderWithMetrics) Handle(ctx context.Context, event domain.DomainEvent) error {
	_, err := r.Record(ctx, event)
	return err
}

func (r *eventRecorderWithMetrics) Record(ctx context.Context, event domain.DomainEvent) (domain.AppendResult, error) {
	start := time.Now()
	result, err := r.next.Record(ctx, event)

	status := result.String()
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "eventstore", "append", status)
	r.metrics.RecordDuration(ctx, "eventstore", "append", time.Since(start), status)

	return result, err
}
