package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/cli"
	"github.com/alexanderramin/timelog/internal/config"
	"github.com/alexanderramin/timelog/internal/db"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	a := &cli.App{
		Store:  repository.NewSQLiteStore(database),
		Config: cfg,
		Logger: logger,
		Fs:     afero.NewOsFs(),
	}
	if cfg.LogUseCases {
		a.Observers = append(a.Observers, service.NewSlogUseCaseObserver(logger))
	}
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).Execute()
}

// exitCode separates caller mistakes from store failures.
func exitCode(err error) int {
	if app.IsStatus(err, app.StatusInternalServerError) {
		return 2
	}
	return 1
}
