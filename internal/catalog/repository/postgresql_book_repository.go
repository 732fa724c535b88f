// Package repository provides data persistence implementations for the book catalog.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/catalog/domain"
	"github.com/openshelf/openshelf/internal/database"

	apperrors "github.com/openshelf/openshelf/internal/errors"
)

// PostgreSQLBookRepository handles book persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLBookRepository struct {
	db *sql.DB
}

// NewPostgreSQLBookRepository creates a new PostgreSQLBookRepository.
func NewPostgreSQLBookRepository(db *sql.DB) *PostgreSQLBookRepository {
	return &PostgreSQLBookRepository{db: db}
}

// Create inserts a new book.
func (r *PostgreSQLBookRepository) Create(ctx context.Context, book *domain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO books (id, isbn, title, author, publication_year, category, available_copies, total_copies, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		book.ID,
		book.ISBN.String(),
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Category,
		book.AvailableCopies(),
		book.TotalCopies,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrBookAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// GetByID retrieves a book by ID.
func (r *PostgreSQLBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectBookQuery + ` WHERE id = $1`

	book, err := scanBook(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book by id")
	}

	return book, nil
}

// GetByISBN retrieves a book by its ISBN.
func (r *PostgreSQLBookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectBookQuery + ` WHERE isbn = $1`

	book, err := scanBook(querier.QueryRowContext(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book by isbn")
	}

	return book, nil
}

// List retrieves all books ordered by creation time.
func (r *PostgreSQLBookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectBookQuery + ` ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list books")
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan book row")
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate book rows")
	}

	return books, nil
}

// Update modifies an existing book.
func (r *PostgreSQLBookRepository) Update(ctx context.Context, book *domain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE books
			  SET isbn = $1,
			  	  title = $2,
				  author = $3,
				  publication_year = $4,
				  category = $5,
				  available_copies = $6,
				  total_copies = $7,
				  updated_at = NOW()
			  WHERE id = $8`

	_, err := querier.ExecContext(
		ctx,
		query,
		book.ISBN.String(),
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Category,
		book.AvailableCopies(),
		book.TotalCopies,
		book.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrBookAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update book")
	}

	return nil
}

// Delete removes a book by ID. Fails with ErrBookNotFound when no row matched.
func (r *PostgreSQLBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM books WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrBookNotFound
	}

	return nil
}

const selectBookQuery = `SELECT id, isbn, title, author, publication_year, category, available_copies, total_copies, created_at, updated_at
			  FROM books`

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBook hydrates a Book from a row through the validating constructor,
// so stored rows that violate the invariants are surfaced as errors.
func scanBook(row rowScanner) (*domain.Book, error) {
	var (
		id                   uuid.UUID
		isbn, title, author  string
		publicationYear      int
		category             string
		available, total     int
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &isbn, &title, &author, &publicationYear, &category, &available, &total, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsedISBN, err := domain.NewISBN(isbn)
	if err != nil {
		return nil, err
	}

	book, err := domain.NewBook(id, parsedISBN, title, author, publicationYear, category, available, total)
	if err != nil {
		return nil, err
	}
	book.CreatedAt = createdAt
	book.UpdatedAt = updatedAt

	return book, nil
}
