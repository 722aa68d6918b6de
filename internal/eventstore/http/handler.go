// Package http exposes read access to recorded event streams.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/eventstore/http/dto"
	"github.com/allisson/accounts/internal/eventstore/usecase"
	"github.com/allisson/accounts/internal/httputil"
)

// EventHandler serves aggregate streams.
type EventHandler struct {
	stream usecase.EventStream
	logger *slog.Logger
}

// NewEventHandler creates a handler over stream.
func NewEventHandler(stream usecase.EventStream, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		stream: stream,
		logger: logger,
	}
}

// ListHandler handles GET /v1/events/:aggregate_id?after=N&limit=M.
// Returns 200 with events ordered by sequence.
func (h *EventHandler) ListHandler(c *gin.Context) {
	aggregateID, err := uuid.Parse(c.Param("aggregate_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid aggregate id: %w", err), h.logger)
		return
	}

	after, limit, err := httputil.ParseStreamWindow(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.stream.List(c.Request.Context(), aggregateID, after, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events, after))
}
