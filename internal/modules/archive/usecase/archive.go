package usecase

import (
	"context"
	"log/slog"

	"passby/internal/modules/archive/domain"
	"passby/internal/modules/archive/dto"
	archivein "passby/internal/modules/archive/port/in"
	archiveout "passby/internal/modules/archive/port/out"
	"passby/internal/modules/archive/service"
)

var _ archivein.Usecase = (*Interactor)(nil)

type Interactor struct {
	svc       *service.ArchiveService
	projector archiveout.IndexProjector
	logger    *slog.Logger
}

func NewInteractor(svc *service.ArchiveService, projector archiveout.IndexProjector, logger *slog.Logger) *Interactor {
	return &Interactor{svc: svc, projector: projector, logger: logger}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.SummaryOutput, error) {
	archived, err := i.svc.Add(ctx, domain.Info{
		StartedAt: input.StartedAt,
		EndedAt:   input.EndedAt,
		Location:  input.Location,
		Note:      input.Note,
	}, entriesFromInput(input.Entries))
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	// The projection is derived state; failures must not undo the archive.
	if err := i.projector.Upsert(ctx, archived.Summary()); err != nil {
		i.logger.Warn("projecting archive", "archive", archived.ID, "err", err)
	}
	return summaryOutput(archived.Summary()), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.SummaryOutput, error) {
	archives, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SummaryOutput, 0, len(archives))
	for _, a := range archives {
		out = append(out, summaryOutput(a.Summary()))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, archiveID string) (dto.ArchivedOutput, error) {
	archived, err := i.svc.Get(ctx, archiveID)
	if err != nil {
		return dto.ArchivedOutput{}, err
	}
	return archivedOutput(archived), nil
}

func (i *Interactor) Delete(ctx context.Context, archiveID string) error {
	if err := i.svc.Delete(ctx, archiveID); err != nil {
		return err
	}
	if err := i.projector.Remove(ctx, archiveID); err != nil {
		i.logger.Warn("removing archive projection", "archive", archiveID, "err", err)
	}
	return nil
}

// Reindex rebuilds the projection from the source of truth.
func (i *Interactor) Reindex(ctx context.Context) error {
	archives, err := i.svc.List(ctx)
	if err != nil {
		return err
	}
	if err := i.projector.Reset(ctx); err != nil {
		return err
	}
	for _, a := range archives {
		if err := i.projector.Upsert(ctx, a.Summary()); err != nil {
			return err
		}
	}
	return nil
}

func entriesFromInput(inputs []dto.EntryInput) []domain.Entry {
	entries := make([]domain.Entry, 0, len(inputs))
	for _, e := range inputs {
		entries = append(entries, domain.Entry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			EpochMS:   e.EpochMS,
			Side:      e.Side,
			Group:     e.Group,
			Category:  e.Category,
			Flags:     domain.Flags{Pass: e.Pass, Look: e.Look, Stop: e.Stop, Use: e.Use},
			Note:      e.Note,
		})
	}
	return entries
}

func summaryOutput(s domain.Summary) dto.SummaryOutput {
	return dto.SummaryOutput{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		Location:   s.Location,
		EntryCount: s.EntryCount,
	}
}

func archivedOutput(a domain.Archived) dto.ArchivedOutput {
	entries := make([]dto.EntryInput, 0, len(a.Entries))
	for _, e := range a.Entries {
		entries = append(entries, dto.EntryInput{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			EpochMS:   e.EpochMS,
			Side:      e.Side,
			Group:     e.Group,
			Category:  e.Category,
			Pass:      e.Flags.Pass,
			Look:      e.Flags.Look,
			Stop:      e.Flags.Stop,
			Use:       e.Flags.Use,
			Note:      e.Note,
		})
	}
	return dto.ArchivedOutput{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		StartedAt: a.Info.StartedAt,
		EndedAt:   a.Info.EndedAt,
		Location:  a.Info.Location,
		Note:      a.Info.Note,
		Entries:   entries,
	}
}
