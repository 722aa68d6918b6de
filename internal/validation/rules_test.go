package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/accounts/internal/errors"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email     string
		shouldErr bool
	}{
		{email: "a@b.com", shouldErr: false},
		{email: "first.last+tag@example.co.uk", shouldErr: false},
		{email: "missing-at.example.com", shouldErr: true},
		{email: "no-tld@example", shouldErr: true},
		{email: "spaces in@example.com", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := validation.Validate(tt.email, Email)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("x", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("a@b.com", NoWhitespace))
	assert.Error(t, validation.Validate(" a@b.com", NoWhitespace))
	assert.Error(t, validation.Validate("a@b.com\n", NoWhitespace))
}

func TestEventType(t *testing.T) {
	assert.NoError(t, validation.Validate("accountRegistred", EventType))
	assert.NoError(t, validation.Validate("user.created_v2", EventType))
	assert.Error(t, validation.Validate("1event", EventType))
	assert.Error(t, validation.Validate("event type", EventType))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("email: must be a valid email address."))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "must be a valid email address")
}
