// Package cli is the timelog command line: cobra commands over the use
// cases, lipgloss output, huh forms and a bubbletea report view.
package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/config"
	"github.com/alexanderramin/timelog/internal/repository"
	"github.com/alexanderramin/timelog/internal/service"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// App holds what the commands need. Use cases are built lazily over Store
// so that serve can add its own observers.
type App struct {
	Store     repository.Store
	Config    config.Config
	Logger    *slog.Logger
	Observers []service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal; forms are only
	// offered when it returns true.
	IsInteractive func() bool
	// Now is the clock used for default dates.
	Now func() time.Time
	// Fs backs import and export files. Nil means the OS filesystem.
	Fs afero.Fs

	uc *app.UseCases
}

// UseCases returns the shared use-case facade.
func (a *App) UseCases() *app.UseCases {
	if a.uc == nil {
		a.uc = a.newUseCases()
	}
	return a.uc
}

func (a *App) newUseCases(extra ...service.UseCaseObserver) *app.UseCases {
	observers := append(append([]service.UseCaseObserver{}, a.Observers...), extra...)
	return app.NewUseCases(a.Store, a.logger(), observers...)
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) fs() afero.Fs {
	if a.Fs == nil {
		return afero.NewOsFs()
	}
	return a.Fs
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timelog" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timelog",
		Short:         "Time tracking with a 24h daily cap and daily summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(a),
		newTaskCmd(a),
		newEntryCmd(a),
		newSummaryCmd(a),
		newReportCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)

	return root
}
