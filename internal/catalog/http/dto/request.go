// Package dto provides data transfer objects for the book catalog HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	appValidation "github.com/openshelf/openshelf/internal/validation"
)

// CreateBookRequest represents the API request for registering a book.
type CreateBookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	Category        string `json:"category"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
}

// Validate validates the CreateBookRequest using the jellydator/validation library.
func (r *CreateBookRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("author must be between 1 and 255 characters"),
		),
		validation.Field(&r.PublicationYear,
			validation.Required.Error("publication_year is required"),
			validation.Min(1000).Error("publication_year must be at least 1000"),
			validation.Max(time.Now().Year()).Error("publication_year cannot be in the future"),
		),
		validation.Field(&r.AvailableCopies,
			validation.Min(0).Error("available_copies cannot be negative"),
		),
		validation.Field(&r.TotalCopies,
			validation.Min(0).Error("total_copies cannot be negative"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateBookRequest represents the API request for a partial book update.
// Absent fields keep their stored values.
type UpdateBookRequest struct {
	ISBN            *string `json:"isbn"`
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublicationYear *int    `json:"publication_year"`
	Category        *string `json:"category"`
	AvailableCopies *int    `json:"available_copies"`
	TotalCopies     *int    `json:"total_copies"`
}

// Validate validates the provided fields of an UpdateBookRequest.
func (r *UpdateBookRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
		),
		validation.Field(&r.Author,
			validation.NilOrNotEmpty.Error("author cannot be empty"),
		),
		validation.Field(&r.ISBN,
			validation.NilOrNotEmpty.Error("isbn cannot be empty"),
		),
	)
	return appValidation.WrapValidationError(err)
}
