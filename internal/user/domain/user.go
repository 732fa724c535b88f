// Package domain defines the core user domain entities and types.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserType classifies a borrower and determines loan limits and periods.
type UserType string

// Recognized user types.
const (
	UserTypeStudent UserType = "STUDENT"
	UserTypeTeacher UserType = "TEACHER"
	UserTypeAdmin   UserType = "ADMIN"
)

// ParseUserType validates and converts a raw string into a UserType.
func ParseUserType(raw string) (UserType, error) {
	switch UserType(raw) {
	case UserTypeStudent, UserTypeTeacher, UserTypeAdmin:
		return UserType(raw), nil
	default:
		return "", ErrInvalidUserType
	}
}

// MaxActiveLoans returns the maximum number of concurrent active loans
// allowed for the type. Unrecognized types (never produced by ParseUserType)
// are allowed zero loans.
func (t UserType) MaxActiveLoans() int {
	switch t {
	case UserTypeStudent:
		return 3
	case UserTypeTeacher:
		return 5
	case UserTypeAdmin:
		return 10
	default:
		return 0
	}
}

// User represents a library member who can borrow books.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     Email
	Type      UserType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser validates the invariants and creates a User.
func NewUser(id uuid.UUID, name string, email Email, userType UserType) (*User, error) {
	user := &User{
		ID:    id,
		Name:  name,
		Email: email,
		Type:  userType,
	}
	if err := user.validate(); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *User) validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrUserNameRequired
	}
	if _, err := ParseUserType(string(u.Type)); err != nil {
		return err
	}
	if u.Email.IsZero() {
		return ErrInvalidEmail
	}
	return nil
}

// MaxActiveLoans returns the loan cap for the user's type.
func (u *User) MaxActiveLoans() int {
	return u.Type.MaxActiveLoans()
}

// IsStudent reports whether the user is a student.
func (u *User) IsStudent() bool {
	return u.Type == UserTypeStudent
}

// IsTeacher reports whether the user is a teacher.
func (u *User) IsTeacher() bool {
	return u.Type == UserTypeTeacher
}

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// UserPatch carries optional field overrides for User.Update.
// Nil fields keep their current values.
type UserPatch struct {
	Name  *string
	Email *string
	Type  *string
}

// Update returns a new validated User with the patch fields applied.
// The email is re-parsed when provided.
func (u *User) Update(patch UserPatch) (*User, error) {
	name := u.Name
	if patch.Name != nil {
		name = *patch.Name
	}

	email := u.Email
	if patch.Email != nil {
		parsed, err := NewEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		email = parsed
	}

	userType := u.Type
	if patch.Type != nil {
		parsed, err := ParseUserType(*patch.Type)
		if err != nil {
			return nil, err
		}
		userType = parsed
	}

	updated, err := NewUser(u.ID, name, email, userType)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = u.CreatedAt
	updated.UpdatedAt = u.UpdatedAt
	return updated, nil
}
