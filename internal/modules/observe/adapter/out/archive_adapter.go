package out

import (
	"context"

	archivedto "passby/internal/modules/archive/dto"
	archivein "passby/internal/modules/archive/port/in"
	"passby/internal/modules/observe/domain"
	observeout "passby/internal/modules/observe/port/out"
)

// ArchiveAdapter hands a finished session snapshot to the archive module.
type ArchiveAdapter struct {
	archive archivein.Usecase
}

var _ observeout.ArchiveSink = (*ArchiveAdapter)(nil)

func NewArchiveAdapter(archive archivein.Usecase) *ArchiveAdapter {
	return &ArchiveAdapter{archive: archive}
}

func (a *ArchiveAdapter) Add(ctx context.Context, info domain.SessionInfo, entries []domain.Entry) (string, error) {
	input := archivedto.AddInput{
		StartedAt: info.StartedAt,
		EndedAt:   info.EndedAt,
		Location:  info.Location,
		Note:      info.Note,
		Entries:   make([]archivedto.EntryInput, 0, len(entries)),
	}
	for _, entry := range entries {
		input.Entries = append(input.Entries, archivedto.EntryInput{
			ID:        entry.ID,
			Timestamp: entry.Timestamp,
			EpochMS:   entry.EpochMS,
			Side:      string(entry.Side),
			Group:     entry.Group,
			Category:  string(entry.Category),
			Pass:      entry.Flags.Pass,
			Look:      entry.Flags.Look,
			Stop:      entry.Flags.Stop,
			Use:       entry.Flags.Use,
			Note:      entry.Note,
		})
	}

	summary, err := a.archive.Add(ctx, input)
	if err != nil {
		return "", err
	}
	return summary.ID, nil
}
