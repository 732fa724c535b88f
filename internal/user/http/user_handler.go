// Package http provides HTTP handlers for user operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/httputil"
	"github.com/openshelf/openshelf/internal/user/http/dto"
	"github.com/openshelf/openshelf/internal/user/usecase"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateHandler registers a new user.
// POST /v1/users - Returns 201 Created with the user representation.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.CreateUser(c.Request.Context(), dto.ToCreateUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetHandler retrieves a user by ID.
// GET /v1/users/:id - Returns 200 OK.
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.GetUserByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetByEmailHandler retrieves a user by email address.
// GET /v1/users/email/:email - Returns 200 OK.
func (h *UserHandler) GetByEmailHandler(c *gin.Context) {
	user, err := h.userUseCase.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListHandler retrieves all users.
// GET /v1/users - Returns 200 OK with a list of users.
func (h *UserHandler) ListHandler(c *gin.Context) {
	users, err := h.userUseCase.ListUsers(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// UpdateHandler applies a partial update to a user.
// PUT /v1/users/:id - Returns 200 OK with the updated representation.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateUser(c.Request.Context(), id, dto.ToUpdateUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteHandler removes a user.
// DELETE /v1/users/:id - Returns 204 No Content.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.DeleteUser(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
