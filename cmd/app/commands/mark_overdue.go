package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openshelf/openshelf/internal/app"
	"github.com/openshelf/openshelf/internal/config"
)

// RunMarkOverdue transitions every active loan past its expected return date
// to OVERDUE. Intended to run periodically, e.g. from a daily cron job.
//
// Requirements: Database must be migrated and accessible.
func RunMarkOverdue(ctx context.Context, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("marking overdue loans")

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get loan use case from container
	loanUseCase, err := container.LoanUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize loan use case: %w", err)
	}

	count, err := loanUseCase.MarkOverdueLoans(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark overdue loans: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputMarkOverdueJSON(count)
	} else {
		outputMarkOverdueText(count)
	}

	logger.Info("overdue sweep completed", slog.Int("count", count))

	return nil
}

// outputMarkOverdueText outputs the result in human-readable text format.
func outputMarkOverdueText(count int) {
	fmt.Printf("Marked %d loan(s) as overdue\n", count)
}

// outputMarkOverdueJSON outputs the result in JSON format for machine consumption.
func outputMarkOverdueJSON(count int) {
	result := map[string]interface{}{
		"count": count,
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(result)
}
