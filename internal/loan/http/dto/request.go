// Package dto provides data transfer objects for the loan HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	appValidation "github.com/openshelf/openshelf/internal/validation"
)

// CreateLoanRequest represents the API request for borrowing a book.
type CreateLoanRequest struct {
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`
}

// Validate validates the CreateLoanRequest using the jellydator/validation library.
func (r *CreateLoanRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
			is.UUID.Error("book_id must be a valid UUID"),
		),
		validation.Field(&r.UserID,
			validation.Required.Error("user_id is required"),
			is.UUID.Error("user_id must be a valid UUID"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ReturnLoanRequest represents the API request for returning a borrowed book.
// When ReturnDate is absent the current time is used.
type ReturnLoanRequest struct {
	ReturnDate *time.Time `json:"return_date"`
}
