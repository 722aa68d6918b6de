// Package http exposes the registration gateway over HTTP.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/account/http/dto"
	"github.com/allisson/accounts/internal/account/usecase"
	"github.com/allisson/accounts/internal/httputil"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// RegisterHandler forwards registrations to the command gateway.
type RegisterHandler struct {
	gateway usecase.CommandGateway
	logger  *slog.Logger
}

// NewRegisterHandler creates a handler over gateway.
func NewRegisterHandler(gateway usecase.CommandGateway, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// RegisterHandler handles POST /v1/auth/register.
// Returns 201 with the remote payload, 409 when the account exists, 500 otherwise.
func (h *RegisterHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.gateway.Register(c.Request.Context(), req.ToDomain())

	switch result.Kind {
	case domain.ResultSuccess:
		c.JSON(http.StatusCreated, dto.RegisterResponse{Data: result.Payload})
	case domain.ResultConflict:
		httputil.HandleConflictGin(c, result.Message)
	default:
		httputil.HandleInternalErrorGin(c, result.Message, result.Cause, h.logger)
	}
}
