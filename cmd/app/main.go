// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/openshelf/openshelf/cmd/app/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Digital library management service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "mark-overdue",
				Usage: "Mark active loans past their expected return date as overdue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMarkOverdue(ctx, cmd.String("format"))
				},
			},
			{
				Name:  "seed",
				Usage: "Populate the database with a starter catalog and users",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSeed(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
