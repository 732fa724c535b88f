package app

import (
	"fmt"

	catalogHTTP "github.com/openshelf/openshelf/internal/catalog/http"
	catalogRepository "github.com/openshelf/openshelf/internal/catalog/repository"
	catalogUsecase "github.com/openshelf/openshelf/internal/catalog/usecase"
)

// BookRepository returns the book repository instance.
func (c *Container) BookRepository() (catalogUsecase.BookRepository, error) {
	var err error
	c.bookRepoInit.Do(func() {
		c.bookRepo, err = c.initBookRepository()
		if err != nil {
			c.initErrors["bookRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bookRepo"]; exists {
		return nil, storedErr
	}
	return c.bookRepo, nil
}

// BookUseCase returns the book use case instance.
func (c *Container) BookUseCase() (catalogUsecase.UseCase, error) {
	var err error
	c.bookUseCaseInit.Do(func() {
		c.bookUseCase, err = c.initBookUseCase()
		if err != nil {
			c.initErrors["bookUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bookUseCase"]; exists {
		return nil, storedErr
	}
	return c.bookUseCase, nil
}

// BookHandler returns the book HTTP handler.
func (c *Container) BookHandler() (*catalogHTTP.BookHandler, error) {
	useCase, err := c.BookUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get book use case for book handler: %w", err)
	}
	return catalogHTTP.NewBookHandler(useCase, c.Logger()), nil
}

// initBookRepository creates the book repository instance.
func (c *Container) initBookRepository() (catalogUsecase.BookRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for book repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return catalogRepository.NewMySQLBookRepository(db), nil
	case "postgres":
		return catalogRepository.NewPostgreSQLBookRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initBookUseCase creates the book use case with its dependencies.
func (c *Container) initBookUseCase() (catalogUsecase.UseCase, error) {
	bookRepo, err := c.BookRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get book repository for book use case: %w", err)
	}

	return catalogUsecase.NewBookUseCase(bookRepo), nil
}
