package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoanResponse represents the API response for a loan.
type LoanResponse struct {
	ID                 uuid.UUID  `json:"id"`
	BookID             uuid.UUID  `json:"book_id"`
	UserID             uuid.UUID  `json:"user_id"`
	LoanDate           time.Time  `json:"loan_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ReturnDate         *time.Time `json:"return_date"`
	Status             string     `json:"status"`
	UserType           string     `json:"user_type"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ReturnLoanResponse represents the API response for a completed return,
// including the fine accrued for late returns.
type ReturnLoanResponse struct {
	Loan LoanResponse `json:"loan"`
	Fine float64      `json:"fine"`
}
