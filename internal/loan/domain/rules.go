package domain

import (
	"fmt"

	catalogdomain "github.com/openshelf/openshelf/internal/catalog/domain"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

// User-visible borrow/return denial reasons. Downstream consumers display
// these strings directly, so the wording must stay stable.
const (
	ReasonUserHasOverdueLoans  = "User has overdue loans and cannot borrow more books until they are returned"
	ReasonNoAvailableCopies    = "Book has no available copies"
	ReasonMaxActiveLoansFormat = "User has reached maximum active loans (%d for %s)"
	ReasonLoanAlreadyReturned  = "Loan is already returned"
	ReasonUserHasNoLoans       = "User doesn't have associated loans"
)

// BorrowDecision is the outcome of a borrow eligibility check.
// Reason is set only when the borrow is denied.
type BorrowDecision struct {
	CanBorrow bool
	Reason    string
}

// ReturnDecision is the outcome of a return eligibility check.
type ReturnDecision struct {
	CanReturn bool
	Reason    string
}

// CanUserBorrowBook decides whether a user may borrow a book given their
// pre-fetched active and overdue loans. Rules are evaluated in strict
// order and the first failing rule wins. Pure function, no I/O.
func CanUserBorrowBook(user *userdomain.User, book *catalogdomain.Book, activeLoans, overdueLoans []*Loan) BorrowDecision {
	if len(overdueLoans) > 0 {
		return BorrowDecision{Reason: ReasonUserHasOverdueLoans}
	}
	if !book.HasAvailableCopies() {
		return BorrowDecision{Reason: ReasonNoAvailableCopies}
	}
	if len(activeLoans) >= user.MaxActiveLoans() {
		return BorrowDecision{Reason: fmt.Sprintf(ReasonMaxActiveLoansFormat, user.MaxActiveLoans(), user.Type)}
	}
	return BorrowDecision{CanBorrow: true}
}

// ValidateReturnBook decides whether a loan may be returned. The only
// denial is a loan that is already returned.
func ValidateReturnBook(loan *Loan) ReturnDecision {
	if loan.IsReturned() {
		return ReturnDecision{Reason: ReasonLoanAlreadyReturned}
	}
	return ReturnDecision{CanReturn: true}
}
