package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/accounts/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedCode  int
		expectedError string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "stream"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "bad id"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unavailable", apperrors.Wrap(apperrors.ErrUnavailable, "db"), http.StatusServiceUnavailable, "unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, nil)
		assert.Empty(t, w.Body.String())
	})

	t.Run("internal details are hidden", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, errors.New("dsn=postgres://secret"), nil)
		assert.NotContains(t, w.Body.String(), "secret")
	})
}

func TestHandleConflictGin(t *testing.T) {
	c, w := newTestContext()
	HandleConflictGin(c, "email taken")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, ErrorResponse{Error: "conflict", Message: "email taken"}, decodeError(t, w))
}

func TestHandleInternalErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleInternalErrorGin(c, "db down", errors.New("status 13"), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrorResponse{Error: "internal_error", Message: "db down"}, decodeError(t, w))
	assert.NotContains(t, w.Body.String(), "status 13")
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorResponse{Error: "bad_request", Message: "unexpected EOF"}, decodeError(t, w))
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, errors.New("email: must be a valid email address."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Error)
}
