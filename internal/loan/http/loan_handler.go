// Package http provides HTTP handlers for loan operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/httputil"
	"github.com/openshelf/openshelf/internal/loan/http/dto"
	"github.com/openshelf/openshelf/internal/loan/usecase"
)

// LoanHandler handles HTTP requests for loan operations.
type LoanHandler struct {
	loanUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewLoanHandler creates a new loan handler with required dependencies.
func NewLoanHandler(loanUseCase usecase.UseCase, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{
		loanUseCase: loanUseCase,
		logger:      logger,
	}
}

// CreateHandler borrows a book for a user.
// POST /v1/loans - Returns 201 Created with the loan representation.
func (h *LoanHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateLoanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	bookID := uuid.MustParse(req.BookID)
	userID := uuid.MustParse(req.UserID)

	loan, err := h.loanUseCase.BorrowBook(c.Request.Context(), bookID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// ReturnHandler returns a borrowed book and reports any accrued fine.
// POST /v1/loans/:id/return - Returns 200 OK.
func (h *LoanHandler) ReturnHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.ReturnLoanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}

	output, err := h.loanUseCase.ReturnBook(c.Request.Context(), id, req.ReturnDate)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToReturnLoanResponse(output))
}

// GetHandler retrieves a loan by ID.
// GET /v1/loans/:id - Returns 200 OK.
func (h *LoanHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	loan, err := h.loanUseCase.GetLoanByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// ListHandler retrieves all loans.
// GET /v1/loans - Returns 200 OK with a list of loans.
func (h *LoanHandler) ListHandler(c *gin.Context) {
	loans, err := h.loanUseCase.ListLoans(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// ListByUserHandler retrieves the loans associated with a user.
// GET /v1/users/:id/loans - Returns 200 OK.
func (h *LoanHandler) ListByUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	loans, err := h.loanUseCase.GetUserLoans(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// ListByBookHandler retrieves the loan history of a book.
// GET /v1/books/:id/loans - Returns 200 OK.
func (h *LoanHandler) ListByBookHandler(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	loans, err := h.loanUseCase.GetLoansByBookID(c.Request.Context(), bookID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// DeleteHandler removes a loan record.
// DELETE /v1/loans/:id - Returns 204 No Content.
func (h *LoanHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.loanUseCase.DeleteLoan(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
