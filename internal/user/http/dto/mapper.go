package dto

import (
	"github.com/openshelf/openshelf/internal/user/domain"
	"github.com/openshelf/openshelf/internal/user/usecase"
)

// ToCreateUserInput converts a CreateUserRequest to a use case input.
func ToCreateUserInput(req CreateUserRequest) usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Type:  req.Type,
	}
}

// ToUpdateUserInput converts an UpdateUserRequest to a use case input.
func ToUpdateUserInput(req UpdateUserRequest) usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Type:  req.Type,
	}
}

// ToUserResponse converts a domain User to an API response.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email.String(),
		Type:      string(user.Type),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain Users to API responses.
func ToUserResponses(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses
}
