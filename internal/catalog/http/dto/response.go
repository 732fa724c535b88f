package dto

import (
	"time"

	"github.com/google/uuid"
)

// BookResponse represents the API response for a book.
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	Category        string    `json:"category"`
	AvailableCopies int       `json:"available_copies"`
	TotalCopies     int       `json:"total_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookAvailabilityResponse represents the API response for an availability check.
type BookAvailabilityResponse struct {
	BookID          uuid.UUID `json:"book_id"`
	Title           string    `json:"title"`
	AvailableCopies int       `json:"available_copies"`
	TotalCopies     int       `json:"total_copies"`
	IsAvailable     bool      `json:"is_available"`
}
