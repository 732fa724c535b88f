// Package domain defines the loan lifecycle entities and the borrowing rules.
package domain

import (
	"time"

	"github.com/google/uuid"

	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

// FinePerDay is the fixed fine rate in currency units per overdue day.
const FinePerDay = 1.5

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

// Loan lifecycle states. RETURNED is terminal.
const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusReturned LoanStatus = "RETURNED"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
)

// ParseLoanStatus validates and converts a raw string into a LoanStatus.
func ParseLoanStatus(raw string) (LoanStatus, error) {
	switch LoanStatus(raw) {
	case LoanStatusActive, LoanStatusReturned, LoanStatusOverdue:
		return LoanStatus(raw), nil
	default:
		return "", ErrInvalidLoanStatus
	}
}

// Loan tracks a single book copy borrowed by a user. The borrower's type is
// snapshotted at creation so the fine and period computation are unaffected
// by later changes to the user. status and returnDate are private so the
// lifecycle can only move through Return and MarkOverdue.
type Loan struct {
	ID                 uuid.UUID
	BookID             uuid.UUID
	UserID             uuid.UUID
	LoanDate           time.Time
	ExpectedReturnDate time.Time
	UserType           userdomain.UserType
	CreatedAt          time.Time
	UpdatedAt          time.Time

	returnDate *time.Time
	status     LoanStatus
}

// NewLoan creates an ACTIVE loan with the due date derived from the
// borrower type's loan period.
func NewLoan(id, bookID, userID uuid.UUID, userType userdomain.UserType, loanDate time.Time) (*Loan, error) {
	period, err := LoanPeriodForUserType(userType)
	if err != nil {
		return nil, err
	}
	return RehydrateLoan(id, bookID, userID, userType, loanDate, period.ExpirationDate(loanDate), nil, LoanStatusActive)
}

// RehydrateLoan reconstructs a loan from stored state, revalidating the
// date invariant.
func RehydrateLoan(
	id, bookID, userID uuid.UUID,
	userType userdomain.UserType,
	loanDate time.Time,
	expectedReturnDate time.Time,
	returnDate *time.Time,
	status LoanStatus,
) (*Loan, error) {
	if loanDate.After(expectedReturnDate) {
		return nil, ErrExpectedBeforeLoanDate
	}
	return &Loan{
		ID:                 id,
		BookID:             bookID,
		UserID:             userID,
		LoanDate:           loanDate,
		ExpectedReturnDate: expectedReturnDate,
		UserType:           userType,
		returnDate:         returnDate,
		status:             status,
	}, nil
}

// Status returns the current lifecycle state.
func (l *Loan) Status() LoanStatus {
	return l.status
}

// ReturnDate returns the recorded return date, or nil while unreturned.
func (l *Loan) ReturnDate() *time.Time {
	return l.returnDate
}

// IsActive reports whether the loan is in the ACTIVE state.
func (l *Loan) IsActive() bool {
	return l.status == LoanStatusActive
}

// IsReturned reports whether the loan has been returned.
func (l *Loan) IsReturned() bool {
	return l.status == LoanStatusReturned
}

// IsOverdue reports whether the loan is past due as of the given time.
// Returned loans are never overdue.
func (l *Loan) IsOverdue(asOf time.Time) bool {
	if l.IsReturned() {
		return false
	}
	return asOf.After(l.ExpectedReturnDate)
}

// Return records the return date and moves the loan to RETURNED.
// Fails if the loan is already returned or the date precedes the loan date.
func (l *Loan) Return(returnDate time.Time) error {
	if l.IsReturned() {
		return ErrLoanAlreadyReturned
	}
	if returnDate.Before(l.LoanDate) {
		return ErrReturnBeforeLoanDate
	}
	l.returnDate = &returnDate
	l.status = LoanStatusReturned
	return nil
}

// MarkOverdue moves the loan to OVERDUE. Fails on returned loans.
func (l *Loan) MarkOverdue() error {
	if l.IsReturned() {
		return ErrMarkReturnedOverdue
	}
	l.status = LoanStatusOverdue
	return nil
}

// Fine returns the accumulated fine as of the given time. For returned
// loans the stored return date is used instead of asOf, so the fine is
// frozen at return time.
func (l *Loan) Fine(asOf time.Time) float64 {
	if l.IsReturned() {
		if l.returnDate == nil {
			return 0
		}
		return float64(l.overdueDays(*l.returnDate)) * FinePerDay
	}
	if l.IsOverdue(asOf) {
		return float64(l.overdueDays(asOf)) * FinePerDay
	}
	return 0
}

// overdueDays counts full-or-partial days past the due date, clamped to 0.
func (l *Loan) overdueDays(checkDate time.Time) int {
	if !checkDate.After(l.ExpectedReturnDate) {
		return 0
	}
	return ceilDays(checkDate.Sub(l.ExpectedReturnDate))
}

// DaysUntilDue returns the days remaining before the due date as of the
// given time, negative when overdue, 0 for returned loans.
func (l *Loan) DaysUntilDue(asOf time.Time) int {
	if l.IsReturned() {
		return 0
	}
	return ceilDays(l.ExpectedReturnDate.Sub(asOf))
}

// ceilDays converts a duration to days, rounding partial days up. For
// negative durations the truncation already matches ceiling semantics.
func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	days := int(d / day)
	if d%day > 0 {
		days++
	}
	return days
}
