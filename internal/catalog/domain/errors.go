package domain

import (
	"github.com/openshelf/openshelf/internal/errors"
)

// Domain-specific errors for book operations.
var (
	// ErrBookNotFound indicates the requested book does not exist.
	ErrBookNotFound = errors.Wrap(errors.ErrNotFound, "book not found")

	// ErrBookAlreadyExists indicates a book with the same ISBN already exists.
	ErrBookAlreadyExists = errors.Wrap(errors.ErrConflict, "book already exists")

	// ErrInvalidISBN indicates the ISBN is not a valid ISBN-10 or ISBN-13.
	ErrInvalidISBN = errors.Wrap(errors.ErrInvalidInput, "invalid ISBN format, must be ISBN-10 or ISBN-13")

	// ErrBookTitleRequired indicates the book title is empty or blank.
	ErrBookTitleRequired = errors.Wrap(errors.ErrInvalidInput, "book title cannot be empty")

	// ErrBookAuthorRequired indicates the book author is empty or blank.
	ErrBookAuthorRequired = errors.Wrap(errors.ErrInvalidInput, "book author cannot be empty")

	// ErrInvalidPublicationYear indicates the year is outside [1000, current year].
	ErrInvalidPublicationYear = errors.Wrap(errors.ErrInvalidInput, "invalid publication year")

	// ErrNegativeTotalCopies indicates a negative total copy count.
	ErrNegativeTotalCopies = errors.Wrap(errors.ErrInvalidInput, "total copies cannot be negative")

	// ErrNegativeAvailableCopies indicates a negative available copy count.
	ErrNegativeAvailableCopies = errors.Wrap(errors.ErrInvalidInput, "available copies cannot be negative")

	// ErrAvailableExceedsTotal indicates available copies exceed total copies.
	ErrAvailableExceedsTotal = errors.Wrap(errors.ErrInvalidInput, "available copies cannot exceed total copies")

	// ErrInvalidAvailableCopies indicates a copy count outside [0, total].
	ErrInvalidAvailableCopies = errors.Wrap(errors.ErrInvalidInput, "invalid available copies count")

	// ErrNoAvailableCopies indicates no copies remain to be loaned.
	ErrNoAvailableCopies = errors.Wrap(errors.ErrUnprocessable, "no available copies to loan")

	// ErrAllCopiesAvailable indicates the available pool is already full.
	ErrAllCopiesAvailable = errors.Wrap(errors.ErrUnprocessable, "cannot increase available copies beyond total copies")
)
