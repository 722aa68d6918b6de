package domain

import (
	apperrors "github.com/allisson/accounts/internal/errors"
)

var (
	// ErrStoreUnavailable indicates the event store could not complete an operation.
	// The delivery may be retried.
	ErrStoreUnavailable = apperrors.Wrap(apperrors.ErrUnavailable, "event store unavailable")

	// ErrInvalidEvent indicates the event is missing its identity or type.
	ErrInvalidEvent = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid domain event")
)
