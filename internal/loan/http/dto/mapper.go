package dto

import (
	"github.com/openshelf/openshelf/internal/loan/domain"
	"github.com/openshelf/openshelf/internal/loan/usecase"
)

// ToLoanResponse converts a domain Loan to an API response.
func ToLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:                 loan.ID,
		BookID:             loan.BookID,
		UserID:             loan.UserID,
		LoanDate:           loan.LoanDate,
		ExpectedReturnDate: loan.ExpectedReturnDate,
		ReturnDate:         loan.ReturnDate(),
		Status:             string(loan.Status()),
		UserType:           string(loan.UserType),
		CreatedAt:          loan.CreatedAt,
		UpdatedAt:          loan.UpdatedAt,
	}
}

// ToLoanResponses converts a slice of domain Loans to API responses.
func ToLoanResponses(loans []*domain.Loan) []LoanResponse {
	responses := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, ToLoanResponse(loan))
	}
	return responses
}

// ToReturnLoanResponse converts a return outcome to an API response.
func ToReturnLoanResponse(output *usecase.ReturnBookOutput) ReturnLoanResponse {
	return ReturnLoanResponse{
		Loan: ToLoanResponse(output.Loan),
		Fine: output.Fine,
	}
}
