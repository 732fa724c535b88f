package app

import (
	"fmt"

	loanHTTP "github.com/openshelf/openshelf/internal/loan/http"
	loanRepository "github.com/openshelf/openshelf/internal/loan/repository"
	loanUsecase "github.com/openshelf/openshelf/internal/loan/usecase"
	"github.com/openshelf/openshelf/internal/metrics"
)

// LoanRepository returns the loan repository instance.
func (c *Container) LoanRepository() (loanUsecase.LoanRepository, error) {
	var err error
	c.loanRepoInit.Do(func() {
		c.loanRepo, err = c.initLoanRepository()
		if err != nil {
			c.initErrors["loanRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loanRepo"]; exists {
		return nil, storedErr
	}
	return c.loanRepo, nil
}

// LoanUseCase returns the loan use case instance.
// When metrics are enabled the use case is wrapped with the metrics decorator.
func (c *Container) LoanUseCase() (loanUsecase.UseCase, error) {
	var err error
	c.loanUseCaseInit.Do(func() {
		c.loanUseCase, err = c.initLoanUseCase()
		if err != nil {
			c.initErrors["loanUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loanUseCase"]; exists {
		return nil, storedErr
	}
	return c.loanUseCase, nil
}

// LoanHandler returns the loan HTTP handler.
func (c *Container) LoanHandler() (*loanHTTP.LoanHandler, error) {
	useCase, err := c.LoanUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get loan use case for loan handler: %w", err)
	}
	return loanHTTP.NewLoanHandler(useCase, c.Logger()), nil
}

// initLoanRepository creates the loan repository instance.
func (c *Container) initLoanRepository() (loanUsecase.LoanRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for loan repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return loanRepository.NewMySQLLoanRepository(db), nil
	case "postgres":
		return loanRepository.NewPostgreSQLLoanRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initLoanUseCase creates the loan use case with all its dependencies.
func (c *Container) initLoanUseCase() (loanUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for loan use case: %w", err)
	}

	loanRepo, err := c.LoanRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get loan repository for loan use case: %w", err)
	}

	bookRepo, err := c.BookRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get book repository for loan use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for loan use case: %w", err)
	}

	useCase := loanUsecase.NewLoanUseCase(txManager, loanRepo, bookRepo, userRepo)

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for loan use case: %w", err)
	}
	if metricsProvider != nil {
		businessMetrics, err := metrics.NewBusinessMetrics(metricsProvider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to create business metrics for loan use case: %w", err)
		}
		useCase = loanUsecase.NewLoanUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
