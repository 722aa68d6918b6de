// Package dto provides data transfer objects for the registration endpoint.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/accounts/internal/account/domain"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request shape. Account rules beyond format belong to the
// remote command service.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.Email,
			validation.Length(3, 254),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}

// ToDomain converts the validated body into a registration request.
func (r *RegisterRequest) ToDomain() domain.RegistrationRequest {
	return domain.RegistrationRequest{
		Email:    r.Email,
		Password: r.Password,
	}
}
