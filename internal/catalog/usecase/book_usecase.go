// Package usecase implements the book catalog business logic.
package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/catalog/domain"
	appValidation "github.com/openshelf/openshelf/internal/validation"
)

// CreateBookInput contains the input data for registering a book.
type CreateBookInput struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	Category        string `json:"category"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
}

// UpdateBookInput contains optional field overrides for a book update.
type UpdateBookInput struct {
	ISBN            *string `json:"isbn"`
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublicationYear *int    `json:"publication_year"`
	Category        *string `json:"category"`
	AvailableCopies *int    `json:"available_copies"`
	TotalCopies     *int    `json:"total_copies"`
}

// BookAvailability reports how many copies of a book can currently be loaned.
type BookAvailability struct {
	BookID          uuid.UUID `json:"book_id"`
	Title           string    `json:"title"`
	AvailableCopies int       `json:"available_copies"`
	TotalCopies     int       `json:"total_copies"`
	IsAvailable     bool      `json:"is_available"`
}

// UseCase defines the interface for book catalog operations.
type UseCase interface {
	CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	CheckAvailability(ctx context.Context, id uuid.UUID) (*BookAvailability, error)
}

// BookRepository interface defines book repository operations.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookUseCase handles book catalog business logic.
type BookUseCase struct {
	bookRepo BookRepository
}

// NewBookUseCase creates a new BookUseCase.
func NewBookUseCase(bookRepo BookRepository) UseCase {
	return &BookUseCase{bookRepo: bookRepo}
}

func (uc *BookUseCase) validateCreateBookInput(input CreateBookInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.ISBN,
			validation.Required.Error("isbn is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Author,
			validation.Required.Error("author is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("author must be between 1 and 255 characters"),
		),
		validation.Field(&input.PublicationYear,
			validation.Required.Error("publication_year is required"),
			validation.Min(1000).Error("publication_year must be at least 1000"),
			validation.Max(time.Now().Year()).Error("publication_year cannot be in the future"),
		),
		validation.Field(&input.AvailableCopies,
			validation.Min(0).Error("available_copies cannot be negative"),
		),
		validation.Field(&input.TotalCopies,
			validation.Min(0).Error("total_copies cannot be negative"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateBook registers a new book in the catalog.
func (uc *BookUseCase) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if err := uc.validateCreateBookInput(input); err != nil {
		return nil, err
	}

	isbn, err := domain.NewISBN(input.ISBN)
	if err != nil {
		return nil, err
	}

	book, err := domain.NewBook(
		uuid.Must(uuid.NewV7()),
		isbn,
		input.Title,
		input.Author,
		input.PublicationYear,
		input.Category,
		input.AvailableCopies,
		input.TotalCopies,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID retrieves a book by ID.
func (uc *BookUseCase) GetBookByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return uc.bookRepo.GetByID(ctx, id)
}

// GetBookByISBN retrieves a book by its ISBN.
func (uc *BookUseCase) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	return uc.bookRepo.GetByISBN(ctx, isbn)
}

// ListBooks retrieves all books.
func (uc *BookUseCase) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return uc.bookRepo.List(ctx)
}

// UpdateBook applies a partial update to a book and persists the result.
func (uc *BookUseCase) UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*domain.Book, error) {
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := book.Update(domain.BookPatch{
		ISBN:            input.ISBN,
		Title:           input.Title,
		Author:          input.Author,
		PublicationYear: input.PublicationYear,
		Category:        input.Category,
		AvailableCopies: input.AvailableCopies,
		TotalCopies:     input.TotalCopies,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.bookRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteBook removes a book from the catalog.
func (uc *BookUseCase) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return uc.bookRepo.Delete(ctx, id)
}

// CheckAvailability reports whether a book has copies available for loan.
func (uc *BookUseCase) CheckAvailability(ctx context.Context, id uuid.UUID) (*BookAvailability, error) {
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BookAvailability{
		BookID:          book.ID,
		Title:           book.Title,
		AvailableCopies: book.AvailableCopies(),
		TotalCopies:     book.TotalCopies,
		IsAvailable:     book.HasAvailableCopies(),
	}, nil
}
