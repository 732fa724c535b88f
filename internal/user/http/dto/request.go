// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	appValidation "github.com/openshelf/openshelf/internal/validation"
)

// CreateUserRequest represents the API request for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// Validate validates the CreateUserRequest using the jellydator/validation library.
func (r *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid email address"),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In("STUDENT", "TEACHER", "ADMIN").Error("type must be one of: STUDENT, TEACHER, ADMIN"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateUserRequest represents the API request for a partial user update.
// Absent fields keep their stored values.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Type  *string `json:"type"`
}

// Validate validates the provided fields of an UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name cannot be empty"),
		),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty.Error("email cannot be empty"),
		),
		validation.Field(&r.Type,
			validation.NilOrNotEmpty.Error("type cannot be empty"),
		),
	)
	return appValidation.WrapValidationError(err)
}
