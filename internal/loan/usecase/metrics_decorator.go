package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/loan/domain"
	"github.com/openshelf/openshelf/internal/metrics"
)

// loanUseCaseWithMetrics decorates the loan UseCase with metrics instrumentation.
type loanUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewLoanUseCaseWithMetrics wraps a loan UseCase with metrics recording.
func NewLoanUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &loanUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (l *loanUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	l.metrics.RecordOperation(ctx, "loans", operation, status)
	l.metrics.RecordDuration(ctx, "loans", operation, time.Since(start), status)
}

// BorrowBook records metrics for borrow operations.
func (l *loanUseCaseWithMetrics) BorrowBook(ctx context.Context, bookID, userID uuid.UUID) (*domain.Loan, error) {
	start := time.Now()
	loan, err := l.next.BorrowBook(ctx, bookID, userID)
	l.record(ctx, "loan_borrow", start, err)
	return loan, err
}

// ReturnBook records metrics for return operations.
func (l *loanUseCaseWithMetrics) ReturnBook(ctx context.Context, loanID uuid.UUID, returnDate *time.Time) (*ReturnBookOutput, error) {
	start := time.Now()
	output, err := l.next.ReturnBook(ctx, loanID, returnDate)
	l.record(ctx, "loan_return", start, err)
	return output, err
}

// GetLoanByID records metrics for loan lookups.
func (l *loanUseCaseWithMetrics) GetLoanByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	start := time.Now()
	loan, err := l.next.GetLoanByID(ctx, id)
	l.record(ctx, "loan_get", start, err)
	return loan, err
}

// ListLoans records metrics for loan listings.
func (l *loanUseCaseWithMetrics) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	start := time.Now()
	loans, err := l.next.ListLoans(ctx)
	l.record(ctx, "loan_list", start, err)
	return loans, err
}

// GetUserLoans records metrics for per-user loan queries.
func (l *loanUseCaseWithMetrics) GetUserLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	start := time.Now()
	loans, err := l.next.GetUserLoans(ctx, userID)
	l.record(ctx, "loan_list_by_user", start, err)
	return loans, err
}

// GetLoansByBookID records metrics for per-book loan queries.
func (l *loanUseCaseWithMetrics) GetLoansByBookID(ctx context.Context, bookID uuid.UUID) ([]*domain.Loan, error) {
	start := time.Now()
	loans, err := l.next.GetLoansByBookID(ctx, bookID)
	l.record(ctx, "loan_list_by_book", start, err)
	return loans, err
}

// DeleteLoan records metrics for loan deletions.
func (l *loanUseCaseWithMetrics) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := l.next.DeleteLoan(ctx, id)
	l.record(ctx, "loan_delete", start, err)
	return err
}

// MarkOverdueLoans records metrics for the overdue sweep.
func (l *loanUseCaseWithMetrics) MarkOverdueLoans(ctx context.Context, asOf time.Time) (int, error) {
	start := time.Now()
	count, err := l.next.MarkOverdueLoans(ctx, asOf)
	l.record(ctx, "loan_mark_overdue", start, err)
	return count, err
}
