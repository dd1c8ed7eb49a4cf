package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	profileinadapter "focusfence/internal/modules/profile/adapter/in"
	profileoutadapter "focusfence/internal/modules/profile/adapter/out"
	profileservice "focusfence/internal/modules/profile/service"
	profileusecase "focusfence/internal/modules/profile/usecase"
	scheduleinadapter "focusfence/internal/modules/schedule/adapter/in"
	scheduleoutadapter "focusfence/internal/modules/schedule/adapter/out"
	scheduleservice "focusfence/internal/modules/schedule/service"
	scheduleusecase "focusfence/internal/modules/schedule/usecase"
	sessioninadapter "focusfence/internal/modules/session/adapter/in"
	sessionoutadapter "focusfence/internal/modules/session/adapter/out"
	sessiondto "focusfence/internal/modules/session/dto"
	sessionout "focusfence/internal/modules/session/port/out"
	sessionservice "focusfence/internal/modules/session/service"
	sessionusecase "focusfence/internal/modules/session/usecase"
	"focusfence/internal/platform/clock"
	"focusfence/internal/platform/config"
	"focusfence/internal/platform/id"
	"focusfence/internal/platform/kv"
	"focusfence/internal/platform/logging"
	"focusfence/internal/platform/metrics"
	uiapp "focusfence/internal/ui/app"
)

type App struct {
	ProfileCLI  profileinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	ScheduleCLI scheduleinadapter.CLIHandler

	Config    config.Config
	Log       zerolog.Logger
	Presenter *sessionoutadapter.TerminalPresenter

	poller   *scheduleservice.ScheduleService
	registry *prometheus.Registry
	closers  []io.Closer
}

func New(cfg config.Config) (*App, error) {
	log, logFile, err := logging.New(cfg.LogPath, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log, closers: []io.Closer{logFile}}

	store, err := kv.Open(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.closers = append(app.closers, store)

	history, err := sessionoutadapter.NewSQLiteHistoryStore(store.DB())
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new history store: %w", err)
	}

	var journal sessionout.JournalStore
	if cfg.Journal.Enabled {
		journal = sessionoutadapter.NewJournalNoteStore(cfg.JournalDir, clock.FixedZone(cfg.Timezone.OffsetHours))
	}

	var recorder metrics.Recorder = metrics.Noop{}
	if cfg.Metrics.Enabled {
		app.registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheus(app.registry)
	}

	clk := clock.SystemClock{}
	zone := clock.FixedZone(cfg.Timezone.OffsetHours)

	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(
		clk,
		zone,
		profileoutadapter.NewKVProfileStore(store),
		profileoutadapter.NewKVThemeStore(store),
		log.With().Str("module", "profile").Logger(),
	))

	app.Presenter = sessionoutadapter.NewTerminalPresenter(os.Stdout)
	sessionSvc := sessionservice.NewSessionService(sessionservice.Deps{
		Clock:      clk,
		Scheduler:  clock.SystemScheduler{},
		IDs:        id.UUID{},
		Fullscreen: app.Presenter,
		Alarm:      app.Presenter,
		Rewards:    sessionoutadapter.NewProfileRewardAdapter(profileUC),
		History:    history,
		Journal:    journal,
		Metrics:    recorder,
		Log:        log.With().Str("module", "session").Logger(),
	}, sessionservice.Delays{
		Completion: cfg.Session.CompletionDelay,
		Withered:   cfg.Session.WitheredDelay,
	})
	sessionUC := sessionusecase.NewInteractor(sessionSvc, clk, zone)

	app.poller = scheduleservice.NewScheduleService(
		clk,
		zone,
		scheduleoutadapter.NewKVScheduleStore(store),
		scheduleoutadapter.NewSessionStarterAdapter(sessionUC),
		log.With().Str("module", "schedule").Logger(),
	)

	app.ProfileCLI = profileinadapter.NewCLIHandler(profileUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.ScheduleCLI = scheduleinadapter.NewCLIHandler(scheduleusecase.NewInteractor(app.poller))
	return app, nil
}

// Close releases the store and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if a.closers[i] == nil {
			continue
		}
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type TUIOptions struct {
	StartMinutes int
}

// RunTUI runs the terminal UI alongside the schedule poller and, when
// enabled, the metrics endpoint. Any session still running on exit is
// abandoned so the terminal is handed back without the alt screen.
func RunTUI(app *App, opts TUIOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := uiapp.NewModel(app.ProfileCLI, app.SessionCLI, app.Presenter, uiapp.Options{
		DefaultMinutes: app.Config.Session.DefaultMinutes,
		StartMinutes:   opts.StartMinutes,
	})
	program := tea.NewProgram(model, tea.WithReportFocus())

	// Send blocks until the program reads it, and deferred transitions
	// notify from their own goroutine; never hold the controller up on it.
	unsubscribe := app.SessionCLI.Subscribe(func(snap sessiondto.SnapshotOutput) {
		go program.Send(uiapp.SnapshotMsg{Snapshot: snap})
	})
	defer unsubscribe()

	go func() {
		if err := app.poller.Run(ctx, app.Config.Schedule.PollInterval); err != nil && !errors.Is(err, context.Canceled) {
			app.Log.Error().Err(err).Msg("schedule poller stopped")
		}
	}()
	if app.registry != nil {
		go func() {
			if err := metrics.Serve(ctx, app.Config.Metrics.Addr, app.registry); err != nil {
				app.Log.Error().Err(err).Str("addr", app.Config.Metrics.Addr).Msg("metrics endpoint stopped")
			}
		}()
	}

	app.Log.Info().Int("start_minutes", opts.StartMinutes).Msg("tui started")
	_, err := program.Run()

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer resetCancel()
	app.SessionCLI.Reset(resetCtx)
	app.Log.Info().Msg("tui stopped")
	return err
}
