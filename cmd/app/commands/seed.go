package commands

import (
	"context"
	"fmt"
	"log/slog"

	catalogUsecase "github.com/openshelf/openshelf/internal/catalog/usecase"
	userUsecase "github.com/openshelf/openshelf/internal/user/usecase"

	"github.com/openshelf/openshelf/internal/app"
	"github.com/openshelf/openshelf/internal/config"
	apperrors "github.com/openshelf/openshelf/internal/errors"
)

var seedBooks = []catalogUsecase.CreateBookInput{
	{
		ISBN:            "978-0-13-235088-4",
		Title:           "Clean Code",
		Author:          "Robert C. Martin",
		PublicationYear: 2008,
		Category:        "Software Engineering",
		AvailableCopies: 3,
		TotalCopies:     3,
	},
	{
		ISBN:            "978-0-201-63361-0",
		Title:           "Design Patterns",
		Author:          "Erich Gamma",
		PublicationYear: 1994,
		Category:        "Software Engineering",
		AvailableCopies: 2,
		TotalCopies:     2,
	},
	{
		ISBN:            "978-0-13-468599-1",
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		PublicationYear: 2017,
		Category:        "Software Engineering",
		AvailableCopies: 2,
		TotalCopies:     2,
	},
}

var seedUsers = []userUsecase.CreateUserInput{
	{
		Name:  "John Doe",
		Email: "john.student@example.com",
		Type:  "STUDENT",
	},
	{
		Name:  "Jane Smith",
		Email: "jane.teacher@example.com",
		Type:  "TEACHER",
	},
	{
		Name:  "Admin User",
		Email: "admin@example.com",
		Type:  "ADMIN",
	},
}

// RunSeed populates the database with a starter catalog and a user per type.
// Records that already exist are skipped, so the command is safe to re-run.
//
// Requirements: Database must be migrated and accessible.
func RunSeed(ctx context.Context) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("seeding database")

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	bookUseCase, err := container.BookUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize book use case: %w", err)
	}

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	for _, input := range seedBooks {
		if _, err := bookUseCase.CreateBook(ctx, input); err != nil {
			if apperrors.Is(err, apperrors.ErrConflict) {
				logger.Info("book already seeded", slog.String("isbn", input.ISBN))
				continue
			}
			return fmt.Errorf("failed to seed book %q: %w", input.Title, err)
		}
		logger.Info("book seeded", slog.String("title", input.Title))
	}

	for _, input := range seedUsers {
		if _, err := userUseCase.CreateUser(ctx, input); err != nil {
			if apperrors.Is(err, apperrors.ErrConflict) {
				logger.Info("user already seeded", slog.String("email", input.Email))
				continue
			}
			return fmt.Errorf("failed to seed user %q: %w", input.Name, err)
		}
		logger.Info("user seeded", slog.String("email", input.Email))
	}

	logger.Info("seeding completed")
	return nil
}
