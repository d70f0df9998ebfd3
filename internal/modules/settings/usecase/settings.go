package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"passby/internal/modules/settings/domain"
	"passby/internal/modules/settings/dto"
	settingsin "passby/internal/modules/settings/port/in"
	settingsout "passby/internal/modules/settings/port/out"
)

// Applier pushes a fresh settings snapshot into the modules that consume
// it (feedback patterns, export filename options). Registered by bootstrap.
type Applier func(settings domain.Settings)

type Interactor struct {
	store    settingsout.Store
	logger   *slog.Logger
	appliers []Applier
}

var _ settingsin.Usecase = (*Interactor)(nil)

func NewInteractor(store settingsout.Store, logger *slog.Logger, appliers ...Applier) *Interactor {
	return &Interactor{store: store, logger: logger, appliers: appliers}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	return toOutput(i.load(ctx)), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	settings := i.load(ctx)
	if input.FeedbackEnabled != nil {
		enabled := *input.FeedbackEnabled
		settings.FeedbackEnabled = &enabled
	}
	if input.Patterns != nil {
		settings.Patterns = input.Patterns
	}
	if input.ExportPrefix != nil {
		settings.ExportPrefix = *input.ExportPrefix
	}
	if input.NoteSuffixRunes != nil {
		settings.NoteSuffixRunes = *input.NoteSuffixRunes
	}
	settings = settings.Normalize()

	if err := i.store.Save(ctx, settings); err != nil {
		return dto.SettingsOutput{}, fmt.Errorf("save settings: %w", err)
	}
	i.apply(settings)
	return toOutput(settings), nil
}

// Reload re-reads the settings file and re-applies it, used by the
// filesystem watcher when the file changes underneath a running TUI.
func (i *Interactor) Reload(ctx context.Context) {
	i.apply(i.load(ctx))
}

func (i *Interactor) load(ctx context.Context) domain.Settings {
	settings, err := i.store.Load(ctx)
	if err != nil {
		i.logger.Warn("settings unreadable, using defaults", "error", err)
		return domain.Defaults()
	}
	return settings.Normalize()
}

func (i *Interactor) apply(settings domain.Settings) {
	for _, apply := range i.appliers {
		apply(settings)
	}
}

func toOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		FeedbackEnabled: s.Enabled(),
		Patterns:        s.Patterns,
		ExportPrefix:    s.ExportPrefix,
		NoteSuffixRunes: s.NoteSuffixRunes,
	}
}
