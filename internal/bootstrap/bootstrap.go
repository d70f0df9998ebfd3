package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	archiveinadapter "passby/internal/modules/archive/adapter/in"
	archiveoutadapter "passby/internal/modules/archive/adapter/out"
	archiveservice "passby/internal/modules/archive/service"
	archiveusecase "passby/internal/modules/archive/usecase"
	exportinadapter "passby/internal/modules/export/adapter/in"
	exportoutadapter "passby/internal/modules/export/adapter/out"
	exportservice "passby/internal/modules/export/service"
	exportusecase "passby/internal/modules/export/usecase"
	feedbackoutadapter "passby/internal/modules/feedback/adapter/out"
	feedbackdto "passby/internal/modules/feedback/dto"
	feedbackout "passby/internal/modules/feedback/port/out"
	feedbackservice "passby/internal/modules/feedback/service"
	feedbackusecase "passby/internal/modules/feedback/usecase"
	observeinadapter "passby/internal/modules/observe/adapter/in"
	observeoutadapter "passby/internal/modules/observe/adapter/out"
	observeservice "passby/internal/modules/observe/service"
	observeusecase "passby/internal/modules/observe/usecase"
	settingsoutadapter "passby/internal/modules/settings/adapter/out"
	settingsdomain "passby/internal/modules/settings/domain"
	settingsusecase "passby/internal/modules/settings/usecase"
	"passby/internal/platform/clock"
	"passby/internal/platform/config"
	"passby/internal/platform/id"
	uiapp "passby/internal/ui/app"
)

type App struct {
	ObserveCLI observeinadapter.CLIHandler
	ArchiveCLI archiveinadapter.CLIHandler
	ExportCLI  exportinadapter.CLIHandler
	SettingsUC *settingsusecase.Interactor
	FeedbackUC *feedbackusecase.Interactor
	ObserveUC  *observeusecase.Interactor
	ArchiveUC  *archiveusecase.Interactor
	ExportUC   *exportusecase.Interactor

	settingsPath string
	logger       *slog.Logger
	closers      []func() error
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	logger := newLogger(cfg.DataPath)

	sink := newFeedbackSink(cfg, logger)
	feedbackSvc := feedbackservice.NewFeedbackService()
	feedbackUC := feedbackusecase.NewInteractor(feedbackSvc, sink, logger)

	archiveStore := archiveoutadapter.NewFileArchiveStore(cfg.DataPath)
	archiveProjector, err := archiveoutadapter.NewSQLiteArchiveProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new archive projector: %w", err)
	}
	archiveUC := archiveusecase.NewInteractor(
		archiveservice.NewArchiveService(clk, ids, archiveStore),
		archiveProjector,
		logger,
	)

	recorder := observeservice.NewRecorder(clk, ids)
	observeUC := observeusecase.NewInteractor(
		recorder,
		observeoutadapter.NewFileStateStore(cfg.DataPath),
		observeoutadapter.NewFeedbackAdapter(feedbackUC),
		observeoutadapter.NewArchiveAdapter(archiveUC),
		logger,
	)
	observeUC.Restore(context.Background())

	formatter := exportservice.NewFormatter(clk, localLocation())
	exportUC := exportusecase.NewInteractor(
		exportoutadapter.NewSessionSourceAdapter(observeUC),
		exportoutadapter.NewArchiveSourceAdapter(archiveUC),
		formatter,
		exportoutadapter.NewFileWriter(cfg.ExportDir),
		logger,
	)

	settingsStore := settingsoutadapter.NewFileSettingsStore(cfg.DataPath)
	settingsUC := settingsusecase.NewInteractor(settingsStore, logger,
		func(s settingsdomain.Settings) {
			_ = feedbackUC.Configure(context.Background(), feedbackdto.ConfigureInput{
				Enabled:  s.Enabled(),
				Patterns: s.Patterns,
			})
		},
		func(s settingsdomain.Settings) {
			formatter.Configure(s.ExportPrefix, s.NoteSuffixRunes)
		},
	)
	settingsUC.Reload(context.Background())

	app := &App{
		ObserveCLI:   observeinadapter.NewCLIHandler(observeUC),
		ArchiveCLI:   archiveinadapter.NewCLIHandler(archiveUC),
		ExportCLI:    exportinadapter.NewCLIHandler(exportUC),
		SettingsUC:   settingsUC,
		FeedbackUC:   feedbackUC,
		ObserveUC:    observeUC,
		ArchiveUC:    archiveUC,
		ExportUC:     exportUC,
		settingsPath: settingsStore.Path(),
		logger:       logger,
	}
	app.closers = append(app.closers, sink.Close)
	return app, nil
}

// Close releases process-held resources, notably a running feedback plugin.
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// RunTUI starts the terminal interface and watches the settings file for
// live reload while it runs.
func RunTUI(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := settingsoutadapter.NewFileWatcher(app.settingsPath, func(ctx context.Context) {
		app.SettingsUC.Reload(ctx)
	}, app.logger)
	watcher.Start(ctx)

	model := uiapp.NewModel(app.ObserveUC, app.ArchiveUC, app.ExportUC, app.FeedbackUC)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	return err
}

// newFeedbackSink picks the feedback transport. A configured plugin binary
// that is not present on disk degrades to silence instead of erroring on
// every cue.
func newFeedbackSink(cfg config.Config, logger *slog.Logger) feedbackout.Sink {
	if cfg.FeedbackPlugin == "" {
		return feedbackoutadapter.NewTerminalSink(os.Stderr)
	}
	if _, err := os.Stat(cfg.FeedbackPlugin); err != nil {
		logger.Warn("feedback plugin not found, feedback muted", "path", cfg.FeedbackPlugin, "error", err)
		return feedbackoutadapter.NewNoopSink()
	}
	return feedbackoutadapter.NewPluginSink(cfg.FeedbackPlugin)
}

// newLogger writes to a log file inside the data directory so log lines
// never corrupt the alternate screen. Logging is best-effort.
func newLogger(dataPath string) *slog.Logger {
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(filepath.Join(dataPath, "passby.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

func localLocation() *time.Location {
	return time.Local
}
