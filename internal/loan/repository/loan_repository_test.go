package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/loan/domain"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

func newTestLoan(t *testing.T) *domain.Loan {
	t.Helper()
	loan, err := domain.NewLoan(
		uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()),
		userdomain.UserTypeStudent,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return loan
}

func loanColumns() []string {
	return []string{"id", "book_id", "user_id", "loan_date", "expected_return_date", "return_date", "status", "user_type", "created_at", "updated_at"}
}

func TestPostgreSQLLoanRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loan := newTestLoan(t)
	mock.ExpectExec("INSERT INTO loans").
		WithArgs(
			loan.ID, loan.BookID, loan.UserID, loan.LoanDate, loan.ExpectedReturnDate,
			nil, loan.Status(), loan.UserType,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLLoanRepository(db)
	require.NoError(t, repo.Create(context.Background(), loan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLLoanRepositoryGetByID(t *testing.T) {
	t.Run("active loan", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		due := loanDate.AddDate(0, 0, 14)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(loanColumns()).
				AddRow(id.String(), uuid.Must(uuid.NewV7()).String(), uuid.Must(uuid.NewV7()).String(),
					loanDate, due, nil, "ACTIVE", "STUDENT", now, now))

		repo := NewPostgreSQLLoanRepository(db)
		loan, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, loan.ID)
		assert.Equal(t, domain.LoanStatusActive, loan.Status())
		assert.Nil(t, loan.ReturnDate())
		assert.Equal(t, userdomain.UserTypeStudent, loan.UserType)
	})

	t.Run("returned loan carries its return date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		due := loanDate.AddDate(0, 0, 14)
		returned := loanDate.AddDate(0, 0, 19)
		now := time.Now()

		mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(loanColumns()).
				AddRow(id.String(), uuid.Must(uuid.NewV7()).String(), uuid.Must(uuid.NewV7()).String(),
					loanDate, due, returned, "RETURNED", "STUDENT", now, now))

		repo := NewPostgreSQLLoanRepository(db)
		loan, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, loan.IsReturned())
		require.NotNil(t, loan.ReturnDate())
		assert.Equal(t, returned, *loan.ReturnDate())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(loanColumns()))

		repo := NewPostgreSQLLoanRepository(db)
		_, err = repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})
}

func TestPostgreSQLLoanRepositoryGetActiveByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.Must(uuid.NewV7())
	loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	due := loanDate.AddDate(0, 0, 14)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM loans WHERE user_id = (.+) AND status").
		WithArgs(userID, domain.LoanStatusActive).
		WillReturnRows(sqlmock.NewRows(loanColumns()).
			AddRow(uuid.Must(uuid.NewV7()).String(), uuid.Must(uuid.NewV7()).String(), userID.String(),
				loanDate, due, nil, "ACTIVE", "STUDENT", now, now))

	repo := NewPostgreSQLLoanRepository(db)
	loans, err := repo.GetActiveByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, userID, loans[0].UserID)
}

func TestPostgreSQLLoanRepositoryGetExpiredActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	asOf := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	due := loanDate.AddDate(0, 0, 14)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM loans WHERE status = (.+) AND expected_return_date").
		WithArgs(domain.LoanStatusActive, asOf).
		WillReturnRows(sqlmock.NewRows(loanColumns()).
			AddRow(uuid.Must(uuid.NewV7()).String(), uuid.Must(uuid.NewV7()).String(), uuid.Must(uuid.NewV7()).String(),
				loanDate, due, nil, "ACTIVE", "STUDENT", now, now))

	repo := NewPostgreSQLLoanRepository(db)
	loans, err := repo.GetExpiredActive(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.True(t, loans[0].IsOverdue(asOf))
}

func TestPostgreSQLLoanRepositoryUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loan := newTestLoan(t)
	returnDate := loan.LoanDate.AddDate(0, 0, 10)
	require.NoError(t, loan.Return(returnDate))

	mock.ExpectExec("UPDATE loans").
		WithArgs(loan.ReturnDate(), loan.Status(), loan.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLLoanRepository(db)
	require.NoError(t, repo.Update(context.Background(), loan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLLoanRepositoryDelete(t *testing.T) {
	t.Run("no rows affected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.Must(uuid.NewV7())
		mock.ExpectExec("DELETE FROM loans").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLLoanRepository(db)
		err = repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})
}

func TestMySQLLoanRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.Must(uuid.NewV7())
	idBytes, err := id.MarshalBinary()
	require.NoError(t, err)
	bookBytes, err := uuid.Must(uuid.NewV7()).MarshalBinary()
	require.NoError(t, err)
	userBytes, err := uuid.Must(uuid.NewV7()).MarshalBinary()
	require.NoError(t, err)

	loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	due := loanDate.AddDate(0, 0, 30)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
		WithArgs(idBytes).
		WillReturnRows(sqlmock.NewRows(loanColumns()).
			AddRow(idBytes, bookBytes, userBytes, loanDate, due, nil, "ACTIVE", "TEACHER", now, now))

	repo := NewMySQLLoanRepository(db)
	loan, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, loan.ID)
	assert.Equal(t, userdomain.UserTypeTeacher, loan.UserType)
}
