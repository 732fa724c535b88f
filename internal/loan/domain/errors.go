package domain

import (
	"github.com/openshelf/openshelf/internal/errors"
)

// Domain-specific errors for loan operations.
var (
	// ErrLoanNotFound indicates the requested loan does not exist.
	ErrLoanNotFound = errors.Wrap(errors.ErrNotFound, "loan not found")

	// ErrLoanAlreadyReturned indicates a return was attempted on a returned loan.
	// The reason is user-visible and must stay stable.
	ErrLoanAlreadyReturned = errors.Unprocessable(ReasonLoanAlreadyReturned)

	// ErrReturnBeforeLoanDate indicates the return date precedes the loan date.
	ErrReturnBeforeLoanDate = errors.Wrap(errors.ErrInvalidInput, "return date cannot be before loan date")

	// ErrExpectedBeforeLoanDate indicates the expected return date precedes the loan date.
	ErrExpectedBeforeLoanDate = errors.Wrap(errors.ErrInvalidInput, "expected return date must be after loan date")

	// ErrMarkReturnedOverdue indicates an overdue marking was attempted on a returned loan.
	ErrMarkReturnedOverdue = errors.Unprocessable("Cannot mark returned loan as overdue")

	// ErrInvalidLoanStatus indicates a status outside ACTIVE, RETURNED, OVERDUE.
	ErrInvalidLoanStatus = errors.Wrap(errors.ErrInvalidInput, "invalid loan status")
)
