package domain

import (
	"github.com/openshelf/openshelf/internal/errors"
)

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidEmail indicates the email format is invalid.
	ErrInvalidEmail = errors.Wrap(errors.ErrInvalidInput, "invalid email format")

	// ErrUserNameRequired indicates the user name is empty or blank.
	ErrUserNameRequired = errors.Wrap(errors.ErrInvalidInput, "user name cannot be empty")

	// ErrInvalidUserType indicates the user type is not one of STUDENT, TEACHER, ADMIN.
	ErrInvalidUserType = errors.Wrap(errors.ErrInvalidInput, "invalid user type")
)
