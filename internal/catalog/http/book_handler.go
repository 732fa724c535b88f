// Package http provides HTTP handlers for book catalog operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/catalog/http/dto"
	"github.com/openshelf/openshelf/internal/catalog/usecase"
	"github.com/openshelf/openshelf/internal/httputil"
)

// BookHandler handles HTTP requests for book catalog operations.
type BookHandler struct {
	bookUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler with required dependencies.
func NewBookHandler(bookUseCase usecase.UseCase, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookUseCase: bookUseCase,
		logger:      logger,
	}
}

// CreateHandler registers a new book.
// POST /v1/books - Returns 201 Created with the book representation.
func (h *BookHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateBookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	book, err := h.bookUseCase.CreateBook(c.Request.Context(), dto.ToCreateBookInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// GetHandler retrieves a book by ID.
// GET /v1/books/:id - Returns 200 OK.
func (h *BookHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	book, err := h.bookUseCase.GetBookByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// GetByISBNHandler retrieves a book by ISBN.
// GET /v1/books/isbn/:isbn - Returns 200 OK.
func (h *BookHandler) GetByISBNHandler(c *gin.Context) {
	book, err := h.bookUseCase.GetBookByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// ListHandler retrieves all books.
// GET /v1/books - Returns 200 OK with a list of books.
func (h *BookHandler) ListHandler(c *gin.Context) {
	books, err := h.bookUseCase.ListBooks(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponses(books))
}

// UpdateHandler applies a partial update to a book.
// PUT /v1/books/:id - Returns 200 OK with the updated representation.
func (h *BookHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	book, err := h.bookUseCase.UpdateBook(c.Request.Context(), id, dto.ToUpdateBookInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// DeleteHandler removes a book from the catalog.
// DELETE /v1/books/:id - Returns 204 No Content.
func (h *BookHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.bookUseCase.DeleteBook(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// AvailabilityHandler reports whether a book has available copies.
// GET /v1/books/:id/availability - Returns 200 OK.
func (h *BookHandler) AvailabilityHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	availability, err := h.bookUseCase.CheckAvailability(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookAvailabilityResponse(availability))
}
