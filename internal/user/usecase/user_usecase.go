// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/user/domain"
	appValidation "github.com/openshelf/openshelf/internal/validation"
)

// CreateUserInput contains the input data for user registration.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// UpdateUserInput contains optional field overrides for a user update.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Type  *string `json:"type"`
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserRepository interface defines user repository operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	userRepo UserRepository
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository) UseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Type,
			validation.Required.Error("type is required"),
			validation.In("STUDENT", "TEACHER", "ADMIN").Error("type must be one of STUDENT, TEACHER, ADMIN"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateUser registers a new user after checking email uniqueness.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	userType, err := domain.ParseUserType(input.Type)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(uuid.Must(uuid.NewV7()), strings.TrimSpace(input.Name), email, userType)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by email. Unlike the repository probe,
// absence is an error here.
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ListUsers retrieves all users.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return uc.userRepo.List(ctx)
}

// UpdateUser applies a partial update to a user, re-checking email
// uniqueness when the email changes.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := user.Update(domain.UserPatch{
		Name:  input.Name,
		Email: input.Email,
		Type:  input.Type,
	})
	if err != nil {
		return nil, err
	}

	if !updated.Email.Equals(user.Email) {
		existing, err := uc.userRepo.GetByEmail(ctx, updated.Email.String())
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, domain.ErrUserAlreadyExists
		}
	}

	if err := uc.userRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteUser removes a user.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return uc.userRepo.Delete(ctx, id)
}
