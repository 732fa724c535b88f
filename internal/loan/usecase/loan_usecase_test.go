package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/openshelf/openshelf/internal/catalog/domain"
	apperrors "github.com/openshelf/openshelf/internal/errors"
	"github.com/openshelf/openshelf/internal/loan/domain"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockLoanRepository is a mock implementation of LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetOverdueByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetExpiredActive(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookRepository is a mock implementation of BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalogdomain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogdomain.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *catalogdomain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userdomain.User), args.Error(1)
}

func newBookFixture(t *testing.T, available, total int) *catalogdomain.Book {
	t.Helper()
	isbn, err := catalogdomain.NewISBN("978-0-13-468599-1")
	require.NoError(t, err)
	book, err := catalogdomain.NewBook(
		uuid.Must(uuid.NewV7()), isbn, "Clean Code", "Robert C. Martin",
		2008, "Software Engineering", available, total,
	)
	require.NoError(t, err)
	return book
}

func newUserFixture(t *testing.T, userType userdomain.UserType) *userdomain.User {
	t.Helper()
	email, err := userdomain.NewEmail("john.student@example.com")
	require.NoError(t, err)
	user, err := userdomain.NewUser(uuid.Must(uuid.NewV7()), "John Doe", email, userType)
	require.NoError(t, err)
	return user
}

func newLoanFixture(t *testing.T, userType userdomain.UserType, loanDate time.Time) *domain.Loan {
	t.Helper()
	loan, err := domain.NewLoan(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), userType, loanDate)
	require.NoError(t, err)
	return loan
}

func newLoanUseCase() (*MockTxManager, *MockLoanRepository, *MockBookRepository, *MockUserRepository, UseCase) {
	txManager := new(MockTxManager)
	loanRepo := new(MockLoanRepository)
	bookRepo := new(MockBookRepository)
	userRepo := new(MockUserRepository)
	uc := NewLoanUseCase(txManager, loanRepo, bookRepo, userRepo)
	return txManager, loanRepo, bookRepo, userRepo, uc
}

func TestBorrowBook(t *testing.T) {
	ctx := context.Background()

	t.Run("success decrements book copies and persists atomically", func(t *testing.T) {
		txManager, loanRepo, bookRepo, userRepo, uc := newLoanUseCase()

		book := newBookFixture(t, 3, 5)
		user := newUserFixture(t, userdomain.UserTypeStudent)

		bookRepo.On("GetByID", ctx, book.ID).Return(book, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		loanRepo.On("GetActiveByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)
		loanRepo.On("GetOverdueByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
		bookRepo.On("Update", ctx, book).Return(nil)

		loan, err := uc.BorrowBook(ctx, book.ID, user.ID)
		require.NoError(t, err)

		assert.Equal(t, book.ID, loan.BookID)
		assert.Equal(t, user.ID, loan.UserID)
		assert.Equal(t, userdomain.UserTypeStudent, loan.UserType)
		assert.Equal(t, domain.LoanStatusActive, loan.Status())
		assert.Equal(t, 2, book.AvailableCopies())

		loanRepo.AssertExpectations(t)
		bookRepo.AssertExpectations(t)
	})

	t.Run("book not found", func(t *testing.T) {
		_, _, bookRepo, _, uc := newLoanUseCase()

		bookID := uuid.Must(uuid.NewV7())
		bookRepo.On("GetByID", ctx, bookID).Return(nil, catalogdomain.ErrBookNotFound)

		_, err := uc.BorrowBook(ctx, bookID, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, catalogdomain.ErrBookNotFound)
	})

	t.Run("user not found", func(t *testing.T) {
		_, _, bookRepo, userRepo, uc := newLoanUseCase()

		book := newBookFixture(t, 3, 5)
		userID := uuid.Must(uuid.NewV7())
		bookRepo.On("GetByID", ctx, book.ID).Return(book, nil)
		userRepo.On("GetByID", ctx, userID).Return(nil, userdomain.ErrUserNotFound)

		_, err := uc.BorrowBook(ctx, book.ID, userID)
		assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
	})

	t.Run("denied when user is at the loan cap", func(t *testing.T) {
		_, loanRepo, bookRepo, userRepo, uc := newLoanUseCase()

		book := newBookFixture(t, 3, 5)
		user := newUserFixture(t, userdomain.UserTypeStudent)
		active := []*domain.Loan{
			newLoanFixture(t, userdomain.UserTypeStudent, time.Now()),
			newLoanFixture(t, userdomain.UserTypeStudent, time.Now()),
			newLoanFixture(t, userdomain.UserTypeStudent, time.Now()),
		}

		bookRepo.On("GetByID", ctx, book.ID).Return(book, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		loanRepo.On("GetActiveByUserID", ctx, user.ID).Return(active, nil)
		loanRepo.On("GetOverdueByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)

		_, err := uc.BorrowBook(ctx, book.ID, user.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnprocessable)
		assert.Equal(t, "User has reached maximum active loans (3 for STUDENT)", err.Error())

		// Nothing was persisted and the book is untouched
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Equal(t, 3, book.AvailableCopies())
	})

	t.Run("denied when user has overdue loans regardless of availability", func(t *testing.T) {
		_, loanRepo, bookRepo, userRepo, uc := newLoanUseCase()

		book := newBookFixture(t, 0, 5)
		user := newUserFixture(t, userdomain.UserTypeStudent)
		overdue := []*domain.Loan{newLoanFixture(t, userdomain.UserTypeStudent, time.Now())}

		bookRepo.On("GetByID", ctx, book.ID).Return(book, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		loanRepo.On("GetActiveByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)
		loanRepo.On("GetOverdueByUserID", ctx, user.ID).Return(overdue, nil)

		_, err := uc.BorrowBook(ctx, book.ID, user.ID)
		require.Error(t, err)
		assert.Equal(t, "User has overdue loans and cannot borrow more books until they are returned", err.Error())
	})

	t.Run("denied when book has no available copies", func(t *testing.T) {
		_, loanRepo, bookRepo, userRepo, uc := newLoanUseCase()

		book := newBookFixture(t, 0, 5)
		user := newUserFixture(t, userdomain.UserTypeStudent)

		bookRepo.On("GetByID", ctx, book.ID).Return(book, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		loanRepo.On("GetActiveByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)
		loanRepo.On("GetOverdueByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)

		_, err := uc.BorrowBook(ctx, book.ID, user.ID)
		require.Error(t, err)
		assert.Equal(t, "Book has no available copies", err.Error())
	})

	t.Run("transaction failure surfaces the error", func(t *testing.T) {
		txManager, loanRepo, bookRepo, userRepo, uc := newLoanUseCase()

		book := newBookFixture(t, 3, 5)
		user := newUserFixture(t, userdomain.UserTypeStudent)

		bookRepo.On("GetByID", ctx, book.ID).Return(book, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		loanRepo.On("GetActiveByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)
		loanRepo.On("GetOverdueByUserID", ctx, user.ID).Return([]*domain.Loan{}, nil)
		txManager.On("WithTx", ctx, mock.Anything).Return(apperrors.New("tx failed"))

		_, err := uc.BorrowBook(ctx, book.ID, user.ID)
		assert.Error(t, err)
	})
}

func TestReturnBook(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the fine before closing an overdue loan", func(t *testing.T) {
		txManager, loanRepo, bookRepo, _, uc := newLoanUseCase()

		// Student loan on 2024-01-01, due 2024-01-15, returned 2024-01-20
		loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := newLoanFixture(t, userdomain.UserTypeStudent, loanDate)
		book := newBookFixture(t, 2, 5)
		returnDate := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

		loanRepo.On("GetByID", ctx, loan.ID).Return(loan, nil)
		bookRepo.On("GetByID", ctx, loan.BookID).Return(book, nil)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		loanRepo.On("Update", ctx, loan).Return(nil)
		bookRepo.On("Update", ctx, book).Return(nil)

		output, err := uc.ReturnBook(ctx, loan.ID, &returnDate)
		require.NoError(t, err)

		assert.Equal(t, 7.5, output.Fine)
		assert.True(t, output.Loan.IsReturned())
		assert.Equal(t, returnDate, *output.Loan.ReturnDate())
		assert.Equal(t, 3, book.AvailableCopies())
	})

	t.Run("no fine for an on-time return", func(t *testing.T) {
		txManager, loanRepo, bookRepo, _, uc := newLoanUseCase()

		loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := newLoanFixture(t, userdomain.UserTypeStudent, loanDate)
		book := newBookFixture(t, 2, 5)
		returnDate := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

		loanRepo.On("GetByID", ctx, loan.ID).Return(loan, nil)
		bookRepo.On("GetByID", ctx, loan.BookID).Return(book, nil)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		loanRepo.On("Update", ctx, loan).Return(nil)
		bookRepo.On("Update", ctx, book).Return(nil)

		output, err := uc.ReturnBook(ctx, loan.ID, &returnDate)
		require.NoError(t, err)
		assert.Equal(t, 0.0, output.Fine)
	})

	t.Run("second return is denied and copies stay put", func(t *testing.T) {
		_, loanRepo, bookRepo, _, uc := newLoanUseCase()

		loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := newLoanFixture(t, userdomain.UserTypeStudent, loanDate)
		require.NoError(t, loan.Return(loanDate.AddDate(0, 0, 10)))
		book := newBookFixture(t, 3, 5)

		loanRepo.On("GetByID", ctx, loan.ID).Return(loan, nil)
		bookRepo.On("GetByID", ctx, loan.BookID).Return(book, nil)

		_, err := uc.ReturnBook(ctx, loan.ID, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnprocessable)
		assert.Equal(t, "Loan is already returned", err.Error())

		bookRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Equal(t, 3, book.AvailableCopies())
	})

	t.Run("loan not found", func(t *testing.T) {
		_, loanRepo, _, _, uc := newLoanUseCase()

		loanID := uuid.Must(uuid.NewV7())
		loanRepo.On("GetByID", ctx, loanID).Return(nil, domain.ErrLoanNotFound)

		_, err := uc.ReturnBook(ctx, loanID, nil)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})
}

func TestGetUserLoans(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user's loans", func(t *testing.T) {
		_, loanRepo, _, _, uc := newLoanUseCase()

		userID := uuid.Must(uuid.NewV7())
		loans := []*domain.Loan{newLoanFixture(t, userdomain.UserTypeStudent, time.Now())}
		loanRepo.On("GetByUserID", ctx, userID).Return(loans, nil)

		got, err := uc.GetUserLoans(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no loans is a business-rule denial", func(t *testing.T) {
		_, loanRepo, _, _, uc := newLoanUseCase()

		userID := uuid.Must(uuid.NewV7())
		loanRepo.On("GetByUserID", ctx, userID).Return([]*domain.Loan{}, nil)

		_, err := uc.GetUserLoans(ctx, userID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnprocessable)
		assert.Equal(t, "User doesn't have associated loans", err.Error())
	})
}

func TestMarkOverdueLoans(t *testing.T) {
	ctx := context.Background()

	t.Run("marks every expired active loan", func(t *testing.T) {
		txManager, loanRepo, _, _, uc := newLoanUseCase()

		asOf := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		loanDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		expired := []*domain.Loan{
			newLoanFixture(t, userdomain.UserTypeStudent, loanDate),
			newLoanFixture(t, userdomain.UserTypeStudent, loanDate),
		}

		loanRepo.On("GetExpiredActive", ctx, asOf).Return(expired, nil)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		loanRepo.On("Update", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)

		count, err := uc.MarkOverdueLoans(ctx, asOf)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		for _, loan := range expired {
			assert.Equal(t, domain.LoanStatusOverdue, loan.Status())
		}
		loanRepo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("nothing to mark", func(t *testing.T) {
		txManager, loanRepo, _, _, uc := newLoanUseCase()

		asOf := time.Now()
		loanRepo.On("GetExpiredActive", ctx, asOf).Return([]*domain.Loan{}, nil)

		count, err := uc.MarkOverdueLoans(ctx, asOf)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})
}
