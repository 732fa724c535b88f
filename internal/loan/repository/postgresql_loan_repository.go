// Package repository provides data persistence implementations for loans.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/loan/domain"

	apperrors "github.com/openshelf/openshelf/internal/errors"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

// PostgreSQLLoanRepository handles loan persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLLoanRepository struct {
	db *sql.DB
}

// NewPostgreSQLLoanRepository creates a new PostgreSQLLoanRepository.
func NewPostgreSQLLoanRepository(db *sql.DB) *PostgreSQLLoanRepository {
	return &PostgreSQLLoanRepository{db: db}
}

// Create inserts a new loan.
func (r *PostgreSQLLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO loans (id, book_id, user_id, loan_date, expected_return_date, return_date, status, user_type, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		loan.ID,
		loan.BookID,
		loan.UserID,
		loan.LoanDate,
		loan.ExpectedReturnDate,
		loan.ReturnDate(),
		loan.Status(),
		loan.UserType,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create loan")
	}
	return nil
}

// GetByID retrieves a loan by ID.
func (r *PostgreSQLLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectLoanQuery + ` WHERE id = $1`

	loan, err := scanLoan(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get loan by id")
	}

	return loan, nil
}

// List retrieves all loans ordered by loan date.
func (r *PostgreSQLLoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to list loans", query)
}

// GetByUserID retrieves all loans for a user.
func (r *PostgreSQLLoanRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` WHERE user_id = $1 ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get loans by user id", query, userID)
}

// GetActiveByUserID retrieves a user's loans in the ACTIVE state.
func (r *PostgreSQLLoanRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` WHERE user_id = $1 AND status = $2 ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get active loans by user id", query, userID, domain.LoanStatusActive)
}

// GetOverdueByUserID retrieves a user's loans in the OVERDUE state.
func (r *PostgreSQLLoanRepository) GetOverdueByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` WHERE user_id = $1 AND status = $2 ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get overdue loans by user id", query, userID, domain.LoanStatusOverdue)
}

// GetByBookID retrieves all loans for a book.
func (r *PostgreSQLLoanRepository) GetByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` WHERE book_id = $1 ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get loans by book id", query, bookID)
}

// GetExpiredActive retrieves ACTIVE loans whose due date has passed as of
// the given time. Used by the overdue sweep.
func (r *PostgreSQLLoanRepository) GetExpiredActive(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` WHERE status = $1 AND expected_return_date < $2 ORDER BY expected_return_date`
	return r.queryLoans(ctx, "failed to get expired active loans", query, domain.LoanStatusActive, asOf)
}

// Update modifies an existing loan.
func (r *PostgreSQLLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE loans
			  SET return_date = $1,
			  	  status = $2,
				  updated_at = NOW()
			  WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, loan.ReturnDate(), loan.Status(), loan.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update loan")
	}

	return nil
}

// Delete removes a loan by ID. Fails with ErrLoanNotFound when no row matched.
func (r *PostgreSQLLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM loans WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete loan")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

func (r *PostgreSQLLoanRepository) queryLoans(ctx context.Context, errMsg, query string, args ...any) ([]*domain.Loan, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, errMsg)
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan loan row")
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate loan rows")
	}

	return loans, nil
}

const selectLoanQuery = `SELECT id, book_id, user_id, loan_date, expected_return_date, return_date, status, user_type, created_at, updated_at
			  FROM loans`

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanLoan hydrates a Loan from a row through the validating reconstructor.
func scanLoan(row rowScanner) (*domain.Loan, error) {
	var (
		id, bookID, userID   uuid.UUID
		loanDate, expected   time.Time
		returnDate           sql.NullTime
		rawStatus, rawType   string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &bookID, &userID, &loanDate, &expected, &returnDate, &rawStatus, &rawType, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	status, err := domain.ParseLoanStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	userType, err := userdomain.ParseUserType(rawType)
	if err != nil {
		return nil, err
	}

	var returned *time.Time
	if returnDate.Valid {
		returned = &returnDate.Time
	}

	loan, err := domain.RehydrateLoan(id, bookID, userID, userType, loanDate, expected, returned, status)
	if err != nil {
		return nil, err
	}
	loan.CreatedAt = createdAt
	loan.UpdatedAt = updatedAt

	return loan, nil
}
