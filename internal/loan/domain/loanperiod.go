package domain

import (
	"time"

	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

// Loan period lengths per borrower type.
const (
	studentLoanDays = 14
	teacherLoanDays = 30
)

// LoanPeriod is the duration a borrower type may keep a book.
type LoanPeriod struct {
	days int
}

// LoanPeriodForUserType returns the loan period for the given borrower type.
// Fails for types not produced by ParseUserType.
func LoanPeriodForUserType(userType userdomain.UserType) (LoanPeriod, error) {
	switch userType {
	case userdomain.UserTypeStudent:
		return LoanPeriod{days: studentLoanDays}, nil
	case userdomain.UserTypeTeacher, userdomain.UserTypeAdmin:
		return LoanPeriod{days: teacherLoanDays}, nil
	default:
		return LoanPeriod{}, userdomain.ErrInvalidUserType
	}
}

// Days returns the period length in days.
func (p LoanPeriod) Days() int {
	return p.days
}

// ExpirationDate returns the due date for a loan starting at the given date.
func (p LoanPeriod) ExpirationDate(start time.Time) time.Time {
	return start.AddDate(0, 0, p.days)
}
