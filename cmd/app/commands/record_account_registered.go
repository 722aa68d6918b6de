package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// AccountRegisteredRecorder records that a user registered.
type AccountRegisteredRecorder interface {
	Handle(ctx context.Context, userID uuid.UUID, data json.RawMessage) error
}

// RunRecordAccountRegistered records an account-registered event for userID.
// Redelivering the same notification is reported as success.
func RunRecordAccountRegistered(
	ctx context.Context,
	recorder AccountRegisteredRecorder,
	logger *slog.Logger,
	writer io.Writer,
	userID string,
	data string,
) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	var payload json.RawMessage
	if data != "" {
		payload = json.RawMessage(data)
	}

	if err := recorder.Handle(ctx, id, payload); err != nil {
		return fmt.Errorf("failed to record account registration: %w", err)
	}

	logger.Info("account registration recorded", slog.String("user_id", id.String()))

	_, err = fmt.Fprintf(writer, "Account registration recorded for user %s\n", id)
	return err
}
