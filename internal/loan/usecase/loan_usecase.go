// Package usecase implements the loan lifecycle business logic: borrowing,
// returning, fines and the overdue sweep.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/openshelf/openshelf/internal/catalog/domain"
	"github.com/openshelf/openshelf/internal/database"
	apperrors "github.com/openshelf/openshelf/internal/errors"
	"github.com/openshelf/openshelf/internal/loan/domain"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

// ReturnBookOutput is the result of a book return.
type ReturnBookOutput struct {
	Loan *domain.Loan
	Fine float64
}

// UseCase defines the interface for loan business logic operations.
type UseCase interface {
	BorrowBook(ctx context.Context, bookID, userID uuid.UUID) (*domain.Loan, error)
	ReturnBook(ctx context.Context, loanID uuid.UUID, returnDate *time.Time) (*ReturnBookOutput, error)
	GetLoanByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]*domain.Loan, error)
	GetUserLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	GetLoansByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) error
	MarkOverdueLoans(ctx context.Context, asOf time.Time) (int, error)
}

// BookRepository interface defines the book operations the loan flow needs.
type BookRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalogdomain.Book, error)
	Update(ctx context.Context, book *catalogdomain.Book) error
}

// UserRepository interface defines the user operations the loan flow needs.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error)
}

// LoanRepository interface defines loan repository operations.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	List(ctx context.Context) ([]*domain.Loan, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	GetOverdueByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	GetByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error)
	GetExpiredActive(ctx context.Context, asOf time.Time) ([]*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoanUseCase handles loan-related business logic.
type LoanUseCase struct {
	txManager database.TxManager
	loanRepo  LoanRepository
	bookRepo  BookRepository
	userRepo  UserRepository
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager database.TxManager,
	loanRepo LoanRepository,
	bookRepo BookRepository,
	userRepo UserRepository,
) UseCase {
	return &LoanUseCase{
		txManager: txManager,
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
	}
}

// BorrowBook creates a loan for a user after checking the borrowing rules.
// The loan insert and the book copy decrement commit atomically.
func (uc *LoanUseCase) BorrowBook(ctx context.Context, bookID, userID uuid.UUID) (*domain.Loan, error) {
	book, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeLoans, err := uc.loanRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	overdueLoans, err := uc.loanRepo.GetOverdueByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision := domain.CanUserBorrowBook(user, book, activeLoans, overdueLoans)
	if !decision.CanBorrow {
		return nil, apperrors.Unprocessable(decision.Reason)
	}

	loan, err := domain.NewLoan(uuid.Must(uuid.NewV7()), book.ID, user.ID, user.Type, time.Now())
	if err != nil {
		return nil, err
	}

	if err := book.DecreaseAvailableCopies(); err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.loanRepo.Create(ctx, loan); err != nil {
			return err
		}
		return uc.bookRepo.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

// ReturnBook closes a loan, computes the fine and returns the copy to the
// pool. The fine is computed before the loan mutates so an overdue return
// is charged against the actual return date.
func (uc *LoanUseCase) ReturnBook(ctx context.Context, loanID uuid.UUID, returnDate *time.Time) (*ReturnBookOutput, error) {
	loan, err := uc.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	book, err := uc.bookRepo.GetByID(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}

	decision := domain.ValidateReturnBook(loan)
	if !decision.CanReturn {
		return nil, apperrors.Unprocessable(decision.Reason)
	}

	when := time.Now()
	if returnDate != nil {
		when = *returnDate
	}

	fine := loan.Fine(when)

	if err := loan.Return(when); err != nil {
		return nil, err
	}
	if err := book.IncreaseAvailableCopies(); err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.loanRepo.Update(ctx, loan); err != nil {
			return err
		}
		return uc.bookRepo.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	return &ReturnBookOutput{Loan: loan, Fine: fine}, nil
}

// GetLoanByID retrieves a loan by ID.
func (uc *LoanUseCase) GetLoanByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// ListLoans retrieves all loans.
func (uc *LoanUseCase) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	return uc.loanRepo.List(ctx)
}

// GetUserLoans retrieves all loans for a user. A user with no loans is
// a business-rule denial with a user-visible message.
func (uc *LoanUseCase) GetUserLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	loans, err := uc.loanRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, apperrors.Unprocessable(domain.ReasonUserHasNoLoans)
	}
	return loans, nil
}

// GetLoansByBookID retrieves all loans for a book.
func (uc *LoanUseCase) GetLoansByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error) {
	return uc.loanRepo.GetByBookID(ctx, bookID)
}

// DeleteLoan removes a loan.
func (uc *LoanUseCase) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	return uc.loanRepo.Delete(ctx, id)
}

// MarkOverdueLoans moves every ACTIVE loan past its due date to OVERDUE
// and returns the number of loans marked. Run by the scheduled sweep.
func (uc *LoanUseCase) MarkOverdueLoans(ctx context.Context, asOf time.Time) (int, error) {
	loans, err := uc.loanRepo.GetExpiredActive(ctx, asOf)
	if err != nil {
		return 0, err
	}
	if len(loans) == 0 {
		return 0, nil
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, loan := range loans {
			if err := loan.MarkOverdue(); err != nil {
				return err
			}
			if err := uc.loanRepo.Update(ctx, loan); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(loans), nil
}
