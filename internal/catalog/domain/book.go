// Package domain defines the book catalog domain entities and types.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book represents a registered title with a tracked number of copies.
// availableCopies is private so the copy count can only move through the
// controlled mutation methods, which enforce 0 <= available <= total.
type Book struct {
	ID              uuid.UUID
	ISBN            ISBN
	Title           string
	Author          string
	PublicationYear int
	Category        string
	TotalCopies     int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	availableCopies int
}

// NewBook validates all invariants and creates a Book.
func NewBook(
	id uuid.UUID,
	isbn ISBN,
	title string,
	author string,
	publicationYear int,
	category string,
	availableCopies int,
	totalCopies int,
) (*Book, error) {
	book := &Book{
		ID:              id,
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
		Category:        category,
		TotalCopies:     totalCopies,
		availableCopies: availableCopies,
	}
	if err := book.validate(); err != nil {
		return nil, err
	}
	return book, nil
}

func (b *Book) validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrBookTitleRequired
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrBookAuthorRequired
	}
	if b.PublicationYear < 1000 || b.PublicationYear > time.Now().Year() {
		return ErrInvalidPublicationYear
	}
	if b.ISBN.IsZero() {
		return ErrInvalidISBN
	}
	if b.TotalCopies < 0 {
		return ErrNegativeTotalCopies
	}
	if b.availableCopies < 0 {
		return ErrNegativeAvailableCopies
	}
	if b.availableCopies > b.TotalCopies {
		return ErrAvailableExceedsTotal
	}
	return nil
}

// AvailableCopies returns the current number of copies available for loan.
func (b *Book) AvailableCopies() int {
	return b.availableCopies
}

// HasAvailableCopies reports whether at least one copy can be loaned.
func (b *Book) HasAvailableCopies() bool {
	return b.availableCopies > 0
}

// DecreaseAvailableCopies removes one copy from the available pool.
// Fails when no copies are available.
func (b *Book) DecreaseAvailableCopies() error {
	if b.availableCopies <= 0 {
		return ErrNoAvailableCopies
	}
	b.availableCopies--
	return nil
}

// IncreaseAvailableCopies returns one copy to the available pool.
// Fails when the pool is already at the total copy count.
func (b *Book) IncreaseAvailableCopies() error {
	if b.availableCopies >= b.TotalCopies {
		return ErrAllCopiesAvailable
	}
	b.availableCopies++
	return nil
}

// SetAvailableCopies sets the available copy count directly, within [0, total].
func (b *Book) SetAvailableCopies(copies int) error {
	if copies < 0 || copies > b.TotalCopies {
		return ErrInvalidAvailableCopies
	}
	b.availableCopies = copies
	return nil
}

// BookPatch carries optional field overrides for Book.Update.
// Nil fields keep their current values.
type BookPatch struct {
	ISBN            *string
	Title           *string
	Author          *string
	PublicationYear *int
	Category        *string
	AvailableCopies *int
	TotalCopies     *int
}

// Update returns a new validated Book with the patch fields applied.
// The ISBN is re-parsed when provided.
func (b *Book) Update(patch BookPatch) (*Book, error) {
	isbn := b.ISBN
	if patch.ISBN != nil {
		parsed, err := NewISBN(*patch.ISBN)
		if err != nil {
			return nil, err
		}
		isbn = parsed
	}

	title := b.Title
	if patch.Title != nil {
		title = *patch.Title
	}

	author := b.Author
	if patch.Author != nil {
		author = *patch.Author
	}

	publicationYear := b.PublicationYear
	if patch.PublicationYear != nil {
		publicationYear = *patch.PublicationYear
	}

	category := b.Category
	if patch.Category != nil {
		category = *patch.Category
	}

	availableCopies := b.availableCopies
	if patch.AvailableCopies != nil {
		availableCopies = *patch.AvailableCopies
	}

	totalCopies := b.TotalCopies
	if patch.TotalCopies != nil {
		totalCopies = *patch.TotalCopies
	}

	updated, err := NewBook(b.ID, isbn, title, author, publicationYear, category, availableCopies, totalCopies)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = b.CreatedAt
	updated.UpdatedAt = b.UpdatedAt
	return updated, nil
}
