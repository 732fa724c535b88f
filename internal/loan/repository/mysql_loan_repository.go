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

// MySQLLoanRepository handles loan persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLLoanRepository struct {
	db *sql.DB
}

// NewMySQLLoanRepository creates a new MySQLLoanRepository.
func NewMySQLLoanRepository(db *sql.DB) *MySQLLoanRepository {
	return &MySQLLoanRepository{db: db}
}

// Create inserts a new loan.
func (r *MySQLLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO loans (id, book_id, user_id, loan_date, expected_return_date, return_date, status, user_type, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	idBytes, bookBytes, userBytes, err := marshalLoanIDs(loan)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		bookBytes,
		userBytes,
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
func (r *MySQLLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectLoanQuery + ` WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	loan, err := scanLoanMySQL(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get loan by id")
	}

	return loan, nil
}

// List retrieves all loans ordered by loan date.
func (r *MySQLLoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to list loans", query)
}

// GetByUserID retrieves all loans for a user.
func (r *MySQLLoanRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	uuidBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	query := selectLoanQuery + ` WHERE user_id = ? ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get loans by user id", query, uuidBytes)
}

// GetActiveByUserID retrieves a user's loans in the ACTIVE state.
func (r *MySQLLoanRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	uuidBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	query := selectLoanQuery + ` WHERE user_id = ? AND status = ? ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get active loans by user id", query, uuidBytes, domain.LoanStatusActive)
}

// GetOverdueByUserID retrieves a user's loans in the OVERDUE state.
func (r *MySQLLoanRepository) GetOverdueByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	uuidBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	query := selectLoanQuery + ` WHERE user_id = ? AND status = ? ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get overdue loans by user id", query, uuidBytes, domain.LoanStatusOverdue)
}

// GetByBookID retrieves all loans for a book.
func (r *MySQLLoanRepository) GetByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error) {
	uuidBytes, err := bookID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	query := selectLoanQuery + ` WHERE book_id = ? ORDER BY loan_date`
	return r.queryLoans(ctx, "failed to get loans by book id", query, uuidBytes)
}

// GetExpiredActive retrieves ACTIVE loans whose due date has passed as of
// the given time. Used by the overdue sweep.
func (r *MySQLLoanRepository) GetExpiredActive(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	query := selectLoanQuery + ` WHERE status = ? AND expected_return_date < ? ORDER BY expected_return_date`
	return r.queryLoans(ctx, "failed to get expired active loans", query, domain.LoanStatusActive, asOf)
}

// Update modifies an existing loan.
func (r *MySQLLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE loans
			  SET return_date = ?,
			  	  status = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	uuidBytes, err := loan.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, loan.ReturnDate(), loan.Status(), uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update loan")
	}

	return nil
}

// Delete removes a loan by ID. Fails with ErrLoanNotFound when no row matched.
func (r *MySQLLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM loans WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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

func (r *MySQLLoanRepository) queryLoans(ctx context.Context, errMsg, query string, args ...any) ([]*domain.Loan, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, errMsg)
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoanMySQL(rows)
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

func marshalLoanIDs(loan *domain.Loan) (idBytes, bookBytes, userBytes []byte, err error) {
	idBytes, err = loan.ID.MarshalBinary()
	if err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	bookBytes, err = loan.BookID.MarshalBinary()
	if err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	userBytes, err = loan.UserID.MarshalBinary()
	if err != nil {
		return nil, nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return idBytes, bookBytes, userBytes, nil
}

// scanLoanMySQL hydrates a Loan from a row, converting the BINARY(16) IDs
// back to UUIDs before running the validating reconstructor.
func scanLoanMySQL(row rowScanner) (*domain.Loan, error) {
	var (
		idBytes, bookBytes, userBytes []byte
		loanDate, expected            time.Time
		returnDate                    sql.NullTime
		rawStatus, rawType            string
		createdAt, updatedAt          time.Time
	)

	if err := row.Scan(&idBytes, &bookBytes, &userBytes, &loanDate, &expected, &returnDate, &rawStatus, &rawType, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var id, bookID, userID uuid.UUID
	if err := id.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := bookID.UnmarshalBinary(bookBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := userID.UnmarshalBinary(userBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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
