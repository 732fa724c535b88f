package dto

import (
	"github.com/openshelf/openshelf/internal/catalog/domain"
	"github.com/openshelf/openshelf/internal/catalog/usecase"
)

// ToCreateBookInput converts a CreateBookRequest DTO to the use case input.
func ToCreateBookInput(req CreateBookRequest) usecase.CreateBookInput {
	return usecase.CreateBookInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Category:        req.Category,
		AvailableCopies: req.AvailableCopies,
		TotalCopies:     req.TotalCopies,
	}
}

// ToUpdateBookInput converts an UpdateBookRequest DTO to the use case input.
func ToUpdateBookInput(req UpdateBookRequest) usecase.UpdateBookInput {
	return usecase.UpdateBookInput{
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Category:        req.Category,
		AvailableCopies: req.AvailableCopies,
		TotalCopies:     req.TotalCopies,
	}
}

// ToBookResponse converts a domain Book to a BookResponse DTO.
func ToBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:              book.ID,
		ISBN:            book.ISBN.String(),
		Title:           book.Title,
		Author:          book.Author,
		PublicationYear: book.PublicationYear,
		Category:        book.Category,
		AvailableCopies: book.AvailableCopies(),
		TotalCopies:     book.TotalCopies,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

// ToBookResponses converts a slice of domain Books to response DTOs.
func ToBookResponses(books []*domain.Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, ToBookResponse(book))
	}
	return responses
}

// ToBookAvailabilityResponse converts an availability report to its DTO.
func ToBookAvailabilityResponse(availability *usecase.BookAvailability) BookAvailabilityResponse {
	return BookAvailabilityResponse{
		BookID:          availability.BookID,
		Title:           availability.Title,
		AvailableCopies: availability.AvailableCopies,
		TotalCopies:     availability.TotalCopies,
		IsAvailable:     availability.IsAvailable,
	}
}
