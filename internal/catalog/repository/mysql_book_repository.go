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

// MySQLBookRepository handles book persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLBookRepository struct {
	db *sql.DB
}

// NewMySQLBookRepository creates a new MySQLBookRepository.
func NewMySQLBookRepository(db *sql.DB) *MySQLBookRepository {
	return &MySQLBookRepository{db: db}
}

// Create inserts a new book.
func (r *MySQLBookRepository) Create(ctx context.Context, book *domain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO books (id, isbn, title, author, publication_year, category, available_copies, total_copies, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	uuidBytes, err := book.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
		book.ISBN.String(),
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Category,
		book.AvailableCopies(),
		book.TotalCopies,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrBookAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// GetByID retrieves a book by ID.
func (r *MySQLBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectBookQuery + ` WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	book, err := scanBookMySQL(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book by id")
	}

	return book, nil
}

// GetByISBN retrieves a book by its ISBN.
func (r *MySQLBookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectBookQuery + ` WHERE isbn = ?`

	book, err := scanBookMySQL(querier.QueryRowContext(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book by isbn")
	}

	return book, nil
}

// List retrieves all books ordered by creation time.
func (r *MySQLBookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectBookQuery + ` ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list books")
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBookMySQL(rows)
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
func (r *MySQLBookRepository) Update(ctx context.Context, book *domain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE books
			  SET isbn = ?,
			  	  title = ?,
				  author = ?,
				  publication_year = ?,
				  category = ?,
				  available_copies = ?,
				  total_copies = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	uuidBytes, err := book.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		book.ISBN.String(),
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Category,
		book.AvailableCopies(),
		book.TotalCopies,
		uuidBytes,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrBookAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update book")
	}

	return nil
}

// Delete removes a book by ID. Fails with ErrBookNotFound when no row matched.
func (r *MySQLBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM books WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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

// scanBookMySQL hydrates a Book from a row, converting the BINARY(16) ID
// back to a UUID before running the validating constructor.
func scanBookMySQL(row rowScanner) (*domain.Book, error) {
	var (
		idBytes              []byte
		isbn, title, author  string
		publicationYear      int
		category             string
		available, total     int
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&idBytes, &isbn, &title, &author, &publicationYear, &category, &available, &total, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var id uuid.UUID
	if err := id.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Duplicate entry ... for key" or "Error 1062"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
